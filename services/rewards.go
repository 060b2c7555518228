package services

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardService converts minted reward codes into balance credits.
type RewardService struct {
	db *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{db: db}
}

// Redeem flips the code to used and credits its amount, atomically. The flip
// is a conditional update on (code, owner, unused, unexpired), so a second
// concurrent submission of the same code finds zero rows and reports
// AlreadyUsed instead of crediting twice. A code owned by someone else reads
// the same as a missing one.
func (s *RewardService) Redeem(userID uint, code string) (*models.RewardCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.Validation("reward code is required")
	}

	var reward models.RewardCode
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&models.RewardCode{}).
			Where("code = ? AND user_id = ? AND is_used = ? AND expiry_date > ?", code, userID, false, now).
			Updates(map[string]interface{}{
				"is_used":       true,
				"redeemed_date": now,
			})
		if res.Error != nil {
			return errors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			var existing models.RewardCode
			if err := tx.Where("code = ?", code).First(&existing).Error; err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.CodeNotFound, "reward code not found")
				}
				return errors.Persistence(err)
			}
			if existing.UserID != userID {
				// Same error as missing so ownership never leaks.
				return errors.New(errors.CodeNotFound, "reward code not found")
			}
			if existing.IsUsed {
				return errors.New(errors.CodeAlreadyUsed, "reward code has already been redeemed")
			}
			return errors.New(errors.CodeExpired, "reward code has expired")
		}

		if err := tx.Where("code = ?", code).First(&reward).Error; err != nil {
			return errors.Persistence(err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", reward.Amount)).Error; err != nil {
			return errors.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &reward, nil
}

// ListByUser returns a user's reward codes, newest first.
func (s *RewardService) ListByUser(userID uint) ([]models.RewardCode, error) {
	var rewards []models.RewardCode
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rewards).Error; err != nil {
		return nil, errors.Persistence(err)
	}
	return rewards, nil
}

// newRewardCode mints an opaque redemption token. Settlement calls this once
// per winning bet.
func newRewardCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
