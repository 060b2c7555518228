package main

import (
	"log"

	"github.com/Dominicushuy/bets-backend/config"
)

func main() {
	cfg := config.Load()

	db := config.SetupDatabase(cfg.DatabaseURL)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("✅ Database migration completed")
}
