package routes

import (
	"github.com/Dominicushuy/bets-backend/controllers"
	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controllers bundles every handler group SetupRoutes wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Rounds   *controllers.RoundController
	Bets     *controllers.BetController
	Rewards  *controllers.RewardController
	Payments *controllers.PaymentController
	WS       *controllers.WSController
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, jwtSecret string, ctl Controllers) {
	api := r.Group("/api")

	// ----------------------
	// Public routes
	// ----------------------
	api.POST("/auth/register", ctl.Auth.Register)
	api.POST("/auth/login", ctl.Auth.Login)
	api.GET("/rounds", ctl.Rounds.List)
	api.GET("/rounds/:id", ctl.Rounds.Get)

	// ----------------------
	// Authenticated routes
	// ----------------------
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtSecret))
	authed.GET("/users/me", ctl.Users.Me)
	authed.GET("/users/me/notifications", ctl.Users.MyNotifications)
	authed.POST("/bets", ctl.Bets.Place)
	authed.GET("/bets", ctl.Bets.MyBets)
	authed.POST("/rewards/redeem", ctl.Rewards.Redeem)
	authed.GET("/rewards", ctl.Rewards.MyRewards)
	authed.POST("/payments", ctl.Payments.Submit)
	authed.GET("/payments", ctl.Payments.MyPayments)

	// ----------------------
	// Admin routes
	// ----------------------
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(jwtSecret), middleware.RequireAdmin(db))
	admin.POST("/rounds", ctl.Rounds.Create)
	admin.PATCH("/rounds/:id", ctl.Rounds.Update)
	admin.DELETE("/rounds/:id", ctl.Rounds.Delete)
	admin.POST("/rounds/:id/complete", ctl.Rounds.Complete)
	admin.POST("/rounds/:id/cancel", ctl.Rounds.Cancel)
	admin.GET("/rounds/:id/bets", ctl.Rounds.RoundBets)
	admin.GET("/payments", ctl.Payments.AdminList)
	admin.POST("/payments/:id/approve", ctl.Payments.Approve)
	admin.POST("/payments/:id/reject", ctl.Payments.Reject)

	// ----------------------
	// Realtime feed
	// ----------------------
	r.GET("/ws/rounds/:id", middleware.RequireAuth(jwtSecret), ctl.WS.RoundFeed)
}
