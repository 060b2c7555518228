package services

import (
	"sync"

	"github.com/Dominicushuy/bets-backend/utils/logger"
	"github.com/gorilla/websocket"
)

// Client is one websocket subscriber bound to a round topic.
type Client struct {
	userID  uint
	roundID uint
	conn    *websocket.Conn
	hub     *Hub
	send    chan []byte
	once    sync.Once
}

// NewClient wraps an upgraded connection; the hub takes over the pumps.
func NewClient(hub *Hub, conn *websocket.Conn, userID, roundID uint) *Client {
	return &Client{
		userID:  userID,
		roundID: roundID,
		conn:    conn,
		hub:     hub,
		send:    make(chan []byte, 32),
	}
}

// Register hands the client to the hub and starts its pumps.
func (c *Client) Register() {
	c.hub.addClient(c)
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// readPump drains incoming frames to keep the connection alive. Clients never
// send commands over this channel; it exists for close detection only.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %d] disconnected normally", c.userID)
			} else {
				logger.Debugf("[Client %d] read error: %v", c.userID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Client %d] write error: %v", c.userID, err)
			return
		}
	}
}
