package middleware

import (
	"net/http"
	"strings"

	"github.com/Dominicushuy/bets-backend/auth"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	UserIDKey = "user_id"
	ClaimsKey = "claims"
)

// RequireAuth validates the session token and stores the principal's user ID
// in the request context. Tokens come from the Authorization header, or from
// the ?token query param for websocket upgrades.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header, expected Bearer token"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It loads the caller's profile once and
// checks the role here, so individual handlers never re-implement the check.
// Must run after RequireAuth.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated principal's ID, 0 if unauthenticated.
func UserID(c *gin.Context) uint {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
