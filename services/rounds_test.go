package services

import (
	"testing"
	"time"

	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRound(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db, nil, testConfig())
	admin := createUser(t, db, 0, models.RoleAdmin)

	round, err := svc.Create(admin.ID, time.Now(), models.RoundPending)
	require.NoError(t, err)
	assert.Equal(t, models.RoundPending, round.Status)
	assert.Zero(t, round.TotalBets)
	assert.Equal(t, admin.ID, round.CreatedBy)

	// Defaults to pending, accepts active, rejects terminal initial states.
	round, err = svc.Create(admin.ID, time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, models.RoundPending, round.Status)

	round, err = svc.Create(admin.ID, time.Now(), models.RoundActive)
	require.NoError(t, err)
	assert.Equal(t, models.RoundActive, round.Status)

	_, err = svc.Create(admin.ID, time.Now(), models.RoundCompleted)
	assert.Equal(t, errors.CodeValidation, errors.Code(err))

	// Transitions are audited.
	var logs int64
	require.NoError(t, db.Model(&models.SystemLog{}).Where("action_type = ?", "round_created").Count(&logs).Error)
	assert.EqualValues(t, 3, logs)
}

func TestUpdateRoundLifecycleGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db, nil, testConfig())
	admin := createUser(t, db, 0, models.RoleAdmin)

	pending := createRound(t, db, models.RoundPending, admin.ID)

	active := models.RoundActive
	updated, err := svc.Update(admin.ID, pending.ID, UpdateRoundParams{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, models.RoundActive, updated.Status)

	// Status may not be forced terminal through update.
	completed := models.RoundCompleted
	_, err = svc.Update(admin.ID, pending.ID, UpdateRoundParams{Status: &completed})
	assert.Equal(t, errors.CodeValidation, errors.Code(err))

	// Terminal rounds are immutable regardless of payload.
	done := createRound(t, db, models.RoundCompleted, admin.ID)
	start := time.Now()
	_, err = svc.Update(admin.ID, done.ID, UpdateRoundParams{StartTime: &start})
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))

	pendingStatus := models.RoundPending
	_, err = svc.Update(admin.ID, done.ID, UpdateRoundParams{Status: &pendingStatus})
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))

	_, err = svc.Update(admin.ID, 9999, UpdateRoundParams{StartTime: &start})
	assert.Equal(t, errors.CodeNotFound, errors.Code(err))
}

func TestDeleteRoundOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db, nil, testConfig())
	admin := createUser(t, db, 0, models.RoleAdmin)

	pending := createRound(t, db, models.RoundPending, admin.ID)
	require.NoError(t, svc.Delete(admin.ID, pending.ID))

	active := createRound(t, db, models.RoundActive, admin.ID)
	err := svc.Delete(admin.ID, active.ID)
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))

	err = svc.Delete(admin.ID, 9999)
	assert.Equal(t, errors.CodeNotFound, errors.Code(err))
}

func TestCancelRound(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db, nil, testConfig())
	admin := createUser(t, db, 0, models.RoleAdmin)

	active := createRound(t, db, models.RoundActive, admin.ID)
	cancelled, err := svc.Cancel(admin.ID, active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoundCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.EndTime)
	assert.Nil(t, cancelled.WinningNumber)
	assert.Nil(t, cancelled.TotalPayout)

	// Terminal: cannot cancel twice.
	_, err = svc.Cancel(admin.ID, active.ID)
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))
}

func TestCompleteRoundSettlesWinners(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	rounds := NewRoundService(db, nil, cfg)
	bets := NewBetService(db, nil, cfg)
	admin := createUser(t, db, 0, models.RoleAdmin)
	user := createUser(t, db, 100000, models.RoleUser)

	round := createRound(t, db, models.RoundActive, admin.ID)

	_, err := bets.Place(user.ID, round.ID, "7", 20000)
	require.NoError(t, err)
	assert.EqualValues(t, 80000, reloadUser(t, db, user.ID).Balance)
	assert.EqualValues(t, 20000, reloadRound(t, db, round.ID).TotalBets)

	completed, err := rounds.Complete(admin.ID, round.ID, "7")
	require.NoError(t, err)

	assert.Equal(t, models.RoundCompleted, completed.Status)
	require.NotNil(t, completed.WinningNumber)
	assert.Equal(t, "7", *completed.WinningNumber)
	assert.NotNil(t, completed.EndTime)
	require.NotNil(t, completed.TotalPayout)
	assert.EqualValues(t, 1600000, *completed.TotalPayout)

	// Bet marked, payout credited: 80000 + 20000*80.
	var bet models.Bet
	require.NoError(t, db.Where("game_round_id = ?", round.ID).First(&bet).Error)
	require.NotNil(t, bet.IsWinner)
	assert.True(t, *bet.IsWinner)
	assert.EqualValues(t, 1680000, reloadUser(t, db, user.ID).Balance)

	// Reward code of the payout amount, expiring in the configured window.
	var reward models.RewardCode
	require.NoError(t, db.Where("user_id = ? AND game_round_id = ?", user.ID, round.ID).First(&reward).Error)
	assert.EqualValues(t, 1600000, reward.Amount)
	assert.False(t, reward.IsUsed)
	assert.WithinDuration(t, time.Now().Add(cfg.RewardExpiry), reward.ExpiryDate, time.Minute)

	// Winner gets a notification; the settlement is audited.
	var notifs int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", user.ID, "win").Count(&notifs).Error)
	assert.EqualValues(t, 1, notifs)
	var logs int64
	require.NoError(t, db.Model(&models.SystemLog{}).Where("action_type = ?", "round_completed").Count(&logs).Error)
	assert.EqualValues(t, 1, logs)
}

func TestCompleteRoundNoWinners(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	rounds := NewRoundService(db, nil, cfg)
	bets := NewBetService(db, nil, cfg)
	admin := createUser(t, db, 0, models.RoleAdmin)
	user := createUser(t, db, 100000, models.RoleUser)

	round := createRound(t, db, models.RoundActive, admin.ID)
	_, err := bets.Place(user.ID, round.ID, "7", 20000)
	require.NoError(t, err)

	completed, err := rounds.Complete(admin.ID, round.ID, "9")
	require.NoError(t, err)

	require.NotNil(t, completed.TotalPayout)
	assert.Zero(t, *completed.TotalPayout)

	var bet models.Bet
	require.NoError(t, db.Where("game_round_id = ?", round.ID).First(&bet).Error)
	require.NotNil(t, bet.IsWinner)
	assert.False(t, *bet.IsWinner)

	// No payout, no reward code, stake stays debited.
	assert.EqualValues(t, 80000, reloadUser(t, db, user.ID).Balance)
	var rewards int64
	require.NoError(t, db.Model(&models.RewardCode{}).Where("game_round_id = ?", round.ID).Count(&rewards).Error)
	assert.Zero(t, rewards)
}

func TestCompleteRoundIsNotRepeatable(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	rounds := NewRoundService(db, nil, cfg)
	bets := NewBetService(db, nil, cfg)
	admin := createUser(t, db, 0, models.RoleAdmin)
	user := createUser(t, db, 100000, models.RoleUser)

	round := createRound(t, db, models.RoundActive, admin.ID)
	_, err := bets.Place(user.ID, round.ID, "7", 20000)
	require.NoError(t, err)

	_, err = rounds.Complete(admin.ID, round.ID, "7")
	require.NoError(t, err)
	balanceAfterFirst := reloadUser(t, db, user.ID).Balance

	// Second completion is rejected on the status guard and moves no money.
	_, err = rounds.Complete(admin.ID, round.ID, "7")
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))
	assert.Equal(t, balanceAfterFirst, reloadUser(t, db, user.ID).Balance)

	var rewards int64
	require.NoError(t, db.Model(&models.RewardCode{}).Where("game_round_id = ?", round.ID).Count(&rewards).Error)
	assert.EqualValues(t, 1, rewards)
}

func TestCompleteRoundPreconditions(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db, nil, testConfig())
	admin := createUser(t, db, 0, models.RoleAdmin)

	pending := createRound(t, db, models.RoundPending, admin.ID)
	_, err := rounds.Complete(admin.ID, pending.ID, "7")
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))

	active := createRound(t, db, models.RoundActive, admin.ID)
	_, err = rounds.Complete(admin.ID, active.ID, "   ")
	assert.Equal(t, errors.CodeValidation, errors.Code(err))

	_, err = rounds.Complete(admin.ID, 9999, "7")
	assert.Equal(t, errors.CodeNotFound, errors.Code(err))
}

func TestListRounds(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db, nil, testConfig())
	admin := createUser(t, db, 0, models.RoleAdmin)

	createRound(t, db, models.RoundPending, admin.ID)
	createRound(t, db, models.RoundActive, admin.ID)
	createRound(t, db, models.RoundActive, admin.ID)

	all, total, err := rounds.List("", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	active, total, err := rounds.List(models.RoundActive, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, active, 2)

	paged, total, err := rounds.List("", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, paged, 1)
}
