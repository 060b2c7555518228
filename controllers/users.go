package controllers

import (
	"net/http"

	"github.com/Dominicushuy/bets-backend/middleware"
	"github.com/Dominicushuy/bets-backend/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Me returns the authenticated user's profile.
func (ctl *UserController) Me(c *gin.Context) {
	user, err := ctl.users.Get(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// MyNotifications returns the authenticated user's notifications.
func (ctl *UserController) MyNotifications(c *gin.Context) {
	notifications, err := ctl.users.Notifications(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
