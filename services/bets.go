package services

import (
	stderrors "errors"
	"strings"

	"github.com/Dominicushuy/bets-backend/config"
	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"gorm.io/gorm"
)

// BetService validates and records stakes against active rounds.
type BetService struct {
	db  *gorm.DB
	hub *Hub
	cfg *config.Config
}

func NewBetService(db *gorm.DB, hub *Hub, cfg *config.Config) *BetService {
	return &BetService{db: db, hub: hub, cfg: cfg}
}

// Place debits the stake, records the bet, and bumps the round total as one
// transaction. Both the balance debit and the round increment are guarded
// conditional updates, so two concurrent placements can never overdraw a
// balance and no bet lands on a round that has left the active state.
func (s *BetService) Place(userID, roundID uint, selectedNumber string, amount int64) (*models.Bet, error) {
	selectedNumber = strings.TrimSpace(selectedNumber)
	if selectedNumber == "" || !isDigits(selectedNumber) {
		return nil, errors.Validation("selected number must be a non-empty numeric string")
	}
	if amount < s.cfg.MinBet {
		return nil, errors.Newf(errors.CodeValidation, "minimum bet is %d", s.cfg.MinBet)
	}

	bet := models.Bet{
		GameRoundID:    roundID,
		UserID:         userID,
		SelectedNumber: selectedNumber,
		Amount:         amount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Round row first, user row second: settlement locks in the same
		// order, so the two transactions can never deadlock each other.
		// Guarded on status: loses the race against settlement cleanly.
		res := tx.Model(&models.GameRound{}).
			Where("id = ? AND status = ?", roundID, models.RoundActive).
			Update("total_bets", gorm.Expr("total_bets + ?", amount))
		if res.Error != nil {
			return errors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			var round models.GameRound
			if err := tx.First(&round, roundID).Error; err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.CodeNotFound, "round not found")
				}
				return errors.Persistence(err)
			}
			return errors.InvalidState("round is %s, bets are only accepted while active", round.Status)
		}

		// Debit only if the post-debit balance stays non-negative.
		res = tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", userID, amount).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance - ?", amount),
				"experience": gorm.Expr("experience + ?", amount/100),
			})
		if res.Error != nil {
			return errors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			var user models.User
			if err := tx.First(&user, userID).Error; err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.CodeNotFound, "user not found")
				}
				return errors.Persistence(err)
			}
			return errors.Newf(errors.CodeInsufficientBalance, "balance %d is below the bet amount %d", user.Balance, amount)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("level", gorm.Expr("experience / ? + 1", models.ExperiencePerLevel)).Error; err != nil {
			return errors.Persistence(err)
		}

		if err := tx.Create(&bet).Error; err != nil {
			return errors.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(Event{Type: EventBetPlaced, RoundID: roundID, Payload: bet})
	return &bet, nil
}

// ListByUser returns a user's bets, optionally scoped to one round.
func (s *BetService) ListByUser(userID, roundID uint) ([]models.Bet, error) {
	query := s.db.Where("user_id = ?", userID)
	if roundID != 0 {
		query = query.Where("game_round_id = ?", roundID)
	}

	var bets []models.Bet
	if err := query.Order("created_at DESC").Find(&bets).Error; err != nil {
		return nil, errors.Persistence(err)
	}
	return bets, nil
}

// ListByRound returns every bet of a round (admin view).
func (s *BetService) ListByRound(roundID uint) ([]models.Bet, error) {
	var bets []models.Bet
	if err := s.db.Where("game_round_id = ?", roundID).Order("created_at ASC").Find(&bets).Error; err != nil {
		return nil, errors.Persistence(err)
	}
	return bets, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
