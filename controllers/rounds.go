package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/gin-gonic/gin"
)

type RoundController struct {
	rounds *services.RoundService
	bets   *services.BetService
}

func NewRoundController(rounds *services.RoundService, bets *services.BetService) *RoundController {
	return &RoundController{rounds: rounds, bets: bets}
}

type CreateRoundRequest struct {
	StartTime time.Time          `json:"start_time" binding:"required"`
	Status    models.RoundStatus `json:"status"`
}

type UpdateRoundRequest struct {
	StartTime *time.Time          `json:"start_time"`
	Status    *models.RoundStatus `json:"status"`
}

type CompleteRoundRequest struct {
	WinningNumber string `json:"winning_number" binding:"required"`
}

// List returns rounds, optionally filtered by ?status= with ?page=&limit=.
func (ctl *RoundController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := models.RoundStatus(c.Query("status"))

	rounds, total, err := ctl.rounds.List(status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rounds": rounds, "total": total, "page": page, "limit": limit})
}

// Get returns a single round.
func (ctl *RoundController) Get(c *gin.Context) {
	id := parseID(c)
	round, err := ctl.rounds.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// Create opens a new round (admin).
func (ctl *RoundController) Create(c *gin.Context) {
	var req CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := ctl.rounds.Create(middleware.UserID(c), req.StartTime, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

// Update edits a pending/active round (admin).
func (ctl *RoundController) Update(c *gin.Context) {
	var req UpdateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := ctl.rounds.Update(middleware.UserID(c), parseID(c), services.UpdateRoundParams{
		StartTime: req.StartTime,
		Status:    req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// Delete removes a pending round (admin).
func (ctl *RoundController) Delete(c *gin.Context) {
	if err := ctl.rounds.Delete(middleware.UserID(c), parseID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "round deleted"})
}

// Complete settles an active round with the declared winning number (admin).
func (ctl *RoundController) Complete(c *gin.Context) {
	var req CompleteRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := ctl.rounds.Complete(middleware.UserID(c), parseID(c), req.WinningNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// Cancel terminates a round without settlement (admin).
func (ctl *RoundController) Cancel(c *gin.Context) {
	round, err := ctl.rounds.Cancel(middleware.UserID(c), parseID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// RoundBets returns every bet of a round (admin).
func (ctl *RoundController) RoundBets(c *gin.Context) {
	bets, err := ctl.bets.ListByRound(parseID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bets)
}

func parseID(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id)
}
