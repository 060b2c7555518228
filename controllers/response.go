package controllers

import (
	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/utils/logger"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status. Persistence and
// internal failures get a generic body so nothing leaks to the client.
func respondError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)

	message := appErr.Message
	if appErr.Code == errors.CodePersistence || appErr.Code == errors.CodeInternal {
		logger.Errorf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "something went wrong, please try again"
	}

	c.JSON(errors.HTTPStatus(appErr.Code), gin.H{"error": message, "code": appErr.Code})
}
