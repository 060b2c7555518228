package main

import (
	"net/http"
	"time"

	"github.com/Dominicushuy/bets-backend/config"
	"github.com/Dominicushuy/bets-backend/controllers"
	"github.com/Dominicushuy/bets-backend/routes"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/Dominicushuy/bets-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load env variables
	cfg := config.Load()

	// Connect to database
	db := config.SetupDatabase(cfg.DatabaseURL)

	// Realtime fanout hub
	hub := services.NewHub()

	// Services (explicit wiring, no globals)
	userService := services.NewUserService(db, cfg)
	roundService := services.NewRoundService(db, hub, cfg)
	betService := services.NewBetService(db, hub, cfg)
	rewardService := services.NewRewardService(db)
	paymentService := services.NewPaymentService(db)

	ctl := routes.Controllers{
		Auth:     controllers.NewAuthController(userService),
		Users:    controllers.NewUserController(userService),
		Rounds:   controllers.NewRoundController(roundService, betService),
		Bets:     controllers.NewBetController(betService),
		Rewards:  controllers.NewRewardController(rewardService),
		Payments: controllers.NewPaymentController(paymentService),
		WS:       controllers.NewWSController(hub),
	}

	// Setup Gin router
	r := gin.Default()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg.JWTSecret, ctl)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now(), "ws_clients": hub.ClientCount()})
	})

	logger.Infof("🚀 Bets backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
