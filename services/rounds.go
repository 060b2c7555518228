package services

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/Dominicushuy/bets-backend/config"
	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/Dominicushuy/bets-backend/utils/logger"
	"gorm.io/gorm"
)

// RoundService gatekeeps every state transition of a GameRound and applies
// settlement when an admin completes one.
type RoundService struct {
	db  *gorm.DB
	hub *Hub
	cfg *config.Config
}

func NewRoundService(db *gorm.DB, hub *Hub, cfg *config.Config) *RoundService {
	return &RoundService{db: db, hub: hub, cfg: cfg}
}

// UpdateRoundParams carries the admin-editable fields. Status may only be
// moved between pending and active here; terminal states have their own
// operations.
type UpdateRoundParams struct {
	StartTime *time.Time
	Status    *models.RoundStatus
}

// Create opens a new round in pending or active state.
func (s *RoundService) Create(actorID uint, startTime time.Time, status models.RoundStatus) (*models.GameRound, error) {
	if status == "" {
		status = models.RoundPending
	}
	if status != models.RoundPending && status != models.RoundActive {
		return nil, errors.Validation("initial status must be pending or active")
	}

	round := models.GameRound{
		Status:    status,
		StartTime: startTime,
		CreatedBy: actorID,
	}
	if err := s.db.Create(&round).Error; err != nil {
		return nil, errors.Persistence(err)
	}

	appendSystemLog(s.db, "round_created", "game round created", actorID, map[string]interface{}{
		"round_id": round.ID,
		"status":   round.Status,
	})
	s.hub.Publish(Event{Type: EventRoundUpdate, RoundID: round.ID, Payload: round})

	return &round, nil
}

func (s *RoundService) Get(id uint) (*models.GameRound, error) {
	var round models.GameRound
	if err := s.db.First(&round, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "round not found")
		}
		return nil, errors.Persistence(err)
	}
	return &round, nil
}

// List returns rounds newest first, optionally filtered by status.
func (s *RoundService) List(status models.RoundStatus, page, limit int) ([]models.GameRound, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.GameRound{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Persistence(err)
	}

	var rounds []models.GameRound
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&rounds).Error; err != nil {
		return nil, 0, errors.Persistence(err)
	}
	return rounds, total, nil
}

// Update edits start time and/or status while the round is still pending or
// active. Terminal states are immutable.
func (s *RoundService) Update(actorID, id uint, params UpdateRoundParams) (*models.GameRound, error) {
	updates := map[string]interface{}{}
	if params.StartTime != nil {
		updates["start_time"] = *params.StartTime
	}
	if params.Status != nil {
		if *params.Status != models.RoundPending && *params.Status != models.RoundActive {
			return nil, errors.Validation("status may only be set to pending or active, complete/cancel the round instead")
		}
		updates["status"] = *params.Status
	}
	if len(updates) == 0 {
		return nil, errors.Validation("nothing to update")
	}

	res := s.db.Model(&models.GameRound{}).
		Where("id = ? AND status IN ?", id, []models.RoundStatus{models.RoundPending, models.RoundActive}).
		Updates(updates)
	if res.Error != nil {
		return nil, errors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		round, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		return nil, errors.InvalidState("round is %s and can no longer be edited", round.Status)
	}

	round, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	appendSystemLog(s.db, "round_updated", "game round updated", actorID, map[string]interface{}{
		"round_id": id,
		"status":   round.Status,
	})
	s.hub.Publish(Event{Type: EventRoundUpdate, RoundID: id, Payload: round})

	return round, nil
}

// Delete removes a round that is still pending. Once a round has been active
// it may carry bets, so it can only be completed or cancelled.
func (s *RoundService) Delete(actorID, id uint) error {
	res := s.db.Where("id = ? AND status = ?", id, models.RoundPending).Delete(&models.GameRound{})
	if res.Error != nil {
		return errors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		round, err := s.Get(id)
		if err != nil {
			return err
		}
		return errors.InvalidState("round is %s, only pending rounds can be deleted", round.Status)
	}

	appendSystemLog(s.db, "round_deleted", "game round deleted", actorID, map[string]interface{}{
		"round_id": id,
	})
	return nil
}

// Cancel terminates a pending or active round without settlement. Bets keep
// their null is_winner; no money moves.
func (s *RoundService) Cancel(actorID, id uint) (*models.GameRound, error) {
	res := s.db.Model(&models.GameRound{}).
		Where("id = ? AND status IN ?", id, []models.RoundStatus{models.RoundPending, models.RoundActive}).
		Updates(map[string]interface{}{
			"status":   models.RoundCancelled,
			"end_time": time.Now(),
		})
	if res.Error != nil {
		return nil, errors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		round, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		return nil, errors.InvalidState("round is %s and cannot be cancelled", round.Status)
	}

	round, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	appendSystemLog(s.db, "round_cancelled", "game round cancelled", actorID, map[string]interface{}{
		"round_id": id,
	})
	s.hub.Publish(Event{Type: EventRoundUpdate, RoundID: id, Payload: round})

	return round, nil
}

// Complete settles an active round against the declared winning number.
//
// The whole settlement is one transaction. The status flip runs first with an
// `status = 'active'` guard: zero rows means the round was already terminal
// (or missing), and any concurrent bet placement blocks on the round row and
// then sees a non-active round, so no bet can slip in after the bet-set
// snapshot. Winners get their balance credited AND a reward code of the same
// amount — both, as the product currently behaves; this effectively pays
// double the multiplier and is awaiting product clarification.
func (s *RoundService) Complete(actorID, id uint, winningNumber string) (*models.GameRound, error) {
	winningNumber = strings.TrimSpace(winningNumber)
	if winningNumber == "" {
		return nil, errors.Validation("winning number is required")
	}

	var round models.GameRound
	var result SettlementResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&models.GameRound{}).
			Where("id = ? AND status = ?", id, models.RoundActive).
			Updates(map[string]interface{}{
				"status":         models.RoundCompleted,
				"winning_number": winningNumber,
				"end_time":       now,
			})
		if res.Error != nil {
			return errors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			var existing models.GameRound
			if err := tx.First(&existing, id).Error; err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.CodeNotFound, "round not found")
				}
				return errors.Persistence(err)
			}
			return errors.InvalidState("round is %s, only active rounds can be completed", existing.Status)
		}

		// Complete bet set, no pagination: settlement must see every bet.
		var bets []models.Bet
		if err := tx.Where("game_round_id = ?", id).Find(&bets).Error; err != nil {
			return errors.Persistence(err)
		}

		result = ComputeSettlement(bets, winningNumber, s.cfg.PayoutMultiplier)

		if err := tx.Model(&models.Bet{}).
			Where("game_round_id = ? AND selected_number = ?", id, winningNumber).
			Update("is_winner", true).Error; err != nil {
			return errors.Persistence(err)
		}
		if err := tx.Model(&models.Bet{}).
			Where("game_round_id = ? AND selected_number <> ?", id, winningNumber).
			Update("is_winner", false).Error; err != nil {
			return errors.Persistence(err)
		}

		expiry := now.Add(s.cfg.RewardExpiry)
		for _, outcome := range result.Outcomes {
			if !outcome.IsWinner {
				continue
			}

			if err := tx.Model(&models.User{}).
				Where("id = ?", outcome.Bet.UserID).
				Update("balance", gorm.Expr("balance + ?", outcome.Payout)).Error; err != nil {
				return errors.Persistence(err)
			}

			code := models.RewardCode{
				Code:        newRewardCode(),
				UserID:      outcome.Bet.UserID,
				GameRoundID: id,
				Amount:      outcome.Payout,
				ExpiryDate:  expiry,
			}
			if err := tx.Create(&code).Error; err != nil {
				return errors.Persistence(err)
			}

			notif := models.Notification{
				UserID:  outcome.Bet.UserID,
				Type:    "win",
				Title:   "You won!",
				Message: "Your number matched. Winnings have been credited and a reward code was issued.",
			}
			if err := tx.Create(&notif).Error; err != nil {
				return errors.Persistence(err)
			}
		}

		if err := tx.Model(&models.GameRound{}).
			Where("id = ?", id).
			Update("total_payout", result.TotalPayout).Error; err != nil {
			return errors.Persistence(err)
		}

		return tx.First(&round, id).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("[Rounds] round %d completed: %d bets, %d winners, payout %d",
		id, len(result.Outcomes), result.WinnerCount, result.TotalPayout)

	appendSystemLog(s.db, "round_completed", "game round settled", actorID, map[string]interface{}{
		"round_id":       id,
		"winning_number": winningNumber,
		"winner_count":   result.WinnerCount,
		"total_payout":   result.TotalPayout,
	})
	s.hub.Publish(Event{Type: EventRoundUpdate, RoundID: id, Payload: round})

	return &round, nil
}
