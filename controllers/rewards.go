package controllers

import (
	"net/http"

	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/gin-gonic/gin"
)

type RewardController struct {
	rewards *services.RewardService
}

func NewRewardController(rewards *services.RewardService) *RewardController {
	return &RewardController{rewards: rewards}
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// Redeem converts a reward code into a balance credit.
func (ctl *RewardController) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reward, err := ctl.rewards.Redeem(middleware.UserID(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reward)
}

// MyRewards lists the caller's reward codes.
func (ctl *RewardController) MyRewards(c *gin.Context) {
	rewards, err := ctl.rewards.ListByUser(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}
