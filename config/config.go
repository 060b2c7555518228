package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPayoutMultiplier = 80
	defaultMinBet           = 10000 // minor currency units
	defaultRewardExpiryDays = 7
	defaultPort             = "4000"
)

// Config holds everything read from the environment at boot.
type Config struct {
	DatabaseURL      string
	Port             string
	JWTSecret        string
	JWTExpiration    time.Duration
	PayoutMultiplier int64 // payout = stake * multiplier on an exact match
	MinBet           int64
	RewardExpiry     time.Duration
	AllowedOrigins   []string
	LogLevel         string
}

// Load reads .env (if present) and environment variables into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             envOr("PORT", defaultPort),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiration:    time.Duration(envInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		PayoutMultiplier: envInt("PAYOUT_MULTIPLIER", defaultPayoutMultiplier),
		MinBet:           envInt("MIN_BET", defaultMinBet),
		RewardExpiry:     time.Duration(envInt("REWARD_EXPIRY_DAYS", defaultRewardExpiryDays)) * 24 * time.Hour,
		AllowedOrigins:   []string{envOr("FRONTEND_ORIGIN", "http://localhost:3000")},
		LogLevel:         envOr("LOG_LEVEL", "debug"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is required in .env or environment")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("[FATAL] %s must be an integer, got %q", key, v)
	}
	return n
}
