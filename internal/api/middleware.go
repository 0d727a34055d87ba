package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/services"
)

// userIDKey is the gin context key holding the authenticated user's ID.
const userIDKey = "userID"

// RequireAuth verifies the Authorization bearer token and stores the user ID
// in the request context.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		userID, err := authService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireAdmin loads the authenticated user and rejects non-admin roles.
// Must run after RequireAuth.
func RequireAdmin(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authService.GetUser(currentUserID(c))
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify admin status"})
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Admin access required"})
			return
		}

		c.Next()
	}
}

// currentUserID returns the authenticated user's ID set by RequireAuth.
func currentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
