package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Dominicushuy/bets-backend/config"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database per test so service tests
// run without a Postgres instance. One connection keeps the shared-cache DB
// alive for the test's lifetime.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiration:    time.Hour,
		PayoutMultiplier: 80,
		MinBet:           10000,
		RewardExpiry:     7 * 24 * time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, balance int64, role models.Role) *models.User {
	t.Helper()

	user := models.User{
		Email:        fmt.Sprintf("user%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Name:         "Test User",
		Role:         role,
		Balance:      balance,
		Level:        1,
		ReferralCode: fmt.Sprintf("REF%d", time.Now().UnixNano()),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createRound(t *testing.T, db *gorm.DB, status models.RoundStatus, createdBy uint) *models.GameRound {
	t.Helper()

	round := models.GameRound{
		Status:    status,
		StartTime: time.Now(),
		CreatedBy: createdBy,
	}
	require.NoError(t, db.Create(&round).Error)
	return &round
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func reloadRound(t *testing.T, db *gorm.DB, id uint) *models.GameRound {
	t.Helper()

	var round models.GameRound
	require.NoError(t, db.First(&round, id).Error)
	return &round
}
