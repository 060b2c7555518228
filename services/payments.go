package services

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"gorm.io/gorm"
)

// PaymentService runs the deposit moderation queue. Approval is the only
// balance credit that does not come from settlement or redemption, and it
// follows the same guarded-update discipline.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Submit files a deposit claim with its proof for admin review.
func (s *PaymentService) Submit(userID uint, amount int64, proofImage string) (*models.PaymentRequest, error) {
	if amount <= 0 {
		return nil, errors.Validation("deposit amount must be positive")
	}
	if strings.TrimSpace(proofImage) == "" {
		return nil, errors.Validation("payment proof is required")
	}

	request := models.PaymentRequest{
		UserID:     userID,
		Amount:     amount,
		ProofImage: proofImage,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, errors.Persistence(err)
	}
	return &request, nil
}

// ListByUser returns a user's own deposit claims.
func (s *PaymentService) ListByUser(userID uint) ([]models.PaymentRequest, error) {
	var requests []models.PaymentRequest
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, errors.Persistence(err)
	}
	return requests, nil
}

// List is the admin moderation view, optionally filtered by status.
func (s *PaymentService) List(status models.PaymentStatus, page, limit int) ([]models.PaymentRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.PaymentRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Persistence(err)
	}

	var requests []models.PaymentRequest
	if err := query.Order("created_at ASC").Offset((page - 1) * limit).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, errors.Persistence(err)
	}
	return requests, total, nil
}

// Approve flips a pending request to approved and credits the amount in one
// transaction. The pending guard makes double approval impossible.
func (s *PaymentService) Approve(actorID, id uint) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", id, models.PaymentPending).
			Updates(map[string]interface{}{
				"status":       models.PaymentApproved,
				"processed_by": actorID,
				"processed_at": now,
			})
		if res.Error != nil {
			return errors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return s.diagnoseDecision(tx, id)
		}

		if err := tx.First(&request, id).Error; err != nil {
			return errors.Persistence(err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Update("balance", gorm.Expr("balance + ?", request.Amount)).Error; err != nil {
			return errors.Persistence(err)
		}

		notif := models.Notification{
			UserID:  request.UserID,
			Type:    "payment",
			Title:   "Deposit approved",
			Message: "Your deposit was approved and credited to your balance.",
		}
		return tx.Create(&notif).Error
	})
	if err != nil {
		return nil, err
	}

	appendSystemLog(s.db, "payment_approved", "deposit request approved", actorID, map[string]interface{}{
		"payment_id": id,
		"user_id":    request.UserID,
		"amount":     request.Amount,
	})
	return &request, nil
}

// Reject closes a pending request without crediting anything.
func (s *PaymentService) Reject(actorID, id uint) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", id, models.PaymentPending).
			Updates(map[string]interface{}{
				"status":       models.PaymentRejected,
				"processed_by": actorID,
				"processed_at": now,
			})
		if res.Error != nil {
			return errors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return s.diagnoseDecision(tx, id)
		}

		if err := tx.First(&request, id).Error; err != nil {
			return errors.Persistence(err)
		}

		notif := models.Notification{
			UserID:  request.UserID,
			Type:    "payment",
			Title:   "Deposit rejected",
			Message: "Your deposit request was rejected. Contact support if you believe this is a mistake.",
		}
		return tx.Create(&notif).Error
	})
	if err != nil {
		return nil, err
	}

	appendSystemLog(s.db, "payment_rejected", "deposit request rejected", actorID, map[string]interface{}{
		"payment_id": id,
	})
	return &request, nil
}

func (s *PaymentService) diagnoseDecision(tx *gorm.DB, id uint) error {
	var existing models.PaymentRequest
	if err := tx.First(&existing, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.CodeNotFound, "payment request not found")
		}
		return errors.Persistence(err)
	}
	return errors.InvalidState("payment request is already %s", existing.Status)
}
