package controllers

import (
	"net/http"
	"strconv"

	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/Dominicushuy/bets-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to the frontend origin
		return true
	},
}

type WSController struct {
	hub *services.Hub
}

func NewWSController(hub *services.Hub) *WSController {
	return &WSController{hub: hub}
}

// RoundFeed upgrades the connection and subscribes the caller to one round's
// change feed. Auth comes from the ?token param (set by RequireAuth).
func (ctl *WSController) RoundFeed(c *gin.Context) {
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	client := services.NewClient(ctl.hub, conn, middleware.UserID(c), uint(roundID))
	client.Register()
}
