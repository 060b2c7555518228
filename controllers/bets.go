package controllers

import (
	"net/http"
	"strconv"

	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/gin-gonic/gin"
)

type BetController struct {
	bets *services.BetService
}

func NewBetController(bets *services.BetService) *BetController {
	return &BetController{bets: bets}
}

type PlaceBetRequest struct {
	GameRoundID    uint   `json:"game_round_id" binding:"required"`
	SelectedNumber string `json:"selected_number" binding:"required"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
}

// Place stakes an amount on a number for an active round.
func (ctl *BetController) Place(c *gin.Context) {
	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := ctl.bets.Place(middleware.UserID(c), req.GameRoundID, req.SelectedNumber, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bet)
}

// MyBets lists the caller's bets, optionally scoped by ?round_id=.
func (ctl *BetController) MyBets(c *gin.Context) {
	roundID, _ := strconv.ParseUint(c.Query("round_id"), 10, 64)

	bets, err := ctl.bets.ListByUser(middleware.UserID(c), uint(roundID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bets)
}
