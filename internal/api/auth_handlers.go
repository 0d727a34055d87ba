package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/services"
)

// SignUpRequest is the JSON body for account creation.
type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignInRequest is the JSON body for credential authentication.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the bearer token and the public user fields.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SignUpHandler registers a new account and returns a token for it.
func SignUpHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
			return
		}

		user, token, err := authService.Register(req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserExists) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
				return
			}
			logger.Error("sign up failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// SignInHandler authenticates credentials and returns a fresh token.
// Unknown accounts get 404 and bad passwords get 400, matching the
// behavior the frontend depends on.
func SignInHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
			return
		}

		user, token, err := authService.Authenticate(req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			case errors.Is(err, apperrors.ErrInvalidPassword):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid password"})
			default:
				logger.Error("sign in failed", zap.String("email", req.Email), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			}
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}
