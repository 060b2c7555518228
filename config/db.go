package config

import (
	"log"

	"github.com/Dominicushuy/bets-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupDatabase connects to Postgres and runs migrations. The returned handle
// is injected into every service; nothing keeps a package-level copy.
func SetupDatabase(databaseURL string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	log.Println("✅ Database connected and migrated")
	return db
}

// Migrate runs AutoMigrate for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.GameRound{},
		&models.Bet{},
		&models.RewardCode{},
		&models.PaymentRequest{},
		&models.Notification{},
		&models.SystemLog{},
	)
}
