package controllers

import (
	"net/http"
	"strconv"

	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type SubmitPaymentRequest struct {
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	ProofImage string `json:"proof_image" binding:"required"`
}

// Submit files a deposit claim for admin review.
func (ctl *PaymentController) Submit(c *gin.Context) {
	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := ctl.payments.Submit(middleware.UserID(c), req.Amount, req.ProofImage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// MyPayments lists the caller's deposit claims.
func (ctl *PaymentController) MyPayments(c *gin.Context) {
	requests, err := ctl.payments.ListByUser(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// AdminList is the moderation queue, filtered by ?status= (admin).
func (ctl *PaymentController) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := models.PaymentStatus(c.Query("status"))

	requests, total, err := ctl.payments.List(status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": requests, "total": total, "page": page, "limit": limit})
}

// Approve credits a pending deposit (admin).
func (ctl *PaymentController) Approve(c *gin.Context) {
	request, err := ctl.payments.Approve(middleware.UserID(c), parseID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Reject closes a pending deposit without crediting (admin).
func (ctl *PaymentController) Reject(c *gin.Context) {
	request, err := ctl.payments.Reject(middleware.UserID(c), parseID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
