package services

import (
	"encoding/json"
	"sync"

	"github.com/Dominicushuy/bets-backend/utils/logger"
)

type EventType string

const (
	EventRoundUpdate EventType = "round:update"
	EventBetPlaced   EventType = "bet:placed"
)

// Event is one change pushed to subscribed clients. The hub is a read-only
// side channel: every operation must hold without any client connected.
type Event struct {
	Type    EventType   `json:"type"`
	RoundID uint        `json:"round_id"`
	Payload interface{} `json:"payload"`
}

// Hub fans round/bet change events out to websocket clients. Clients
// subscribe to a single round topic; roundID 0 subscribes to everything.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Infof("[Hub] user %d subscribed to round %d (total=%d)", c.userID, c.roundID, total)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.Close()
	}
	h.mu.Unlock()
}

// Publish sends the event to every client subscribed to its round. Slow
// clients get dropped messages, never a blocked publisher. Nil-safe so
// services can run without a hub in tests.
func (h *Hub) Publish(evt Event) {
	if h == nil {
		return
	}

	b, err := json.Marshal(evt)
	if err != nil {
		logger.Errorf("[Hub] failed to marshal event %s: %v", evt.Type, err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.roundID == 0 || c.roundID == evt.RoundID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		// A client may disconnect between the snapshot and the send, closing
		// its channel from the read pump.
		func(c *Client) {
			defer func() {
				if r := recover(); r != nil {
					logger.Warnf("[Hub] recovered %s event to user %d: %v", evt.Type, c.userID, r)
				}
			}()
			select {
			case c.send <- b:
			default:
				logger.Warnf("[Hub] dropping %s event to user %d", evt.Type, c.userID)
			}
		}(c)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
