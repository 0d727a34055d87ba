package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/services"
)

// AdminLink decorates a link with its owner's identity for the admin views.
type AdminLink struct {
	models.Link
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}

// AdminListUsersHandler returns every registered account.
func AdminListUsersHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := authService.ListUsers()
		if err != nil {
			logger.Error("failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// AdminUserDetailHandler returns one account together with all of its links.
func AdminUserDetailHandler(authService *services.AuthService, linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		user, err := authService.GetUser(uint(id))
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			logger.Error("failed to load user", zap.Uint64("user_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve user"})
			return
		}

		links, err := linkService.ListUserLinks(user.ID)
		if err != nil {
			logger.Error("failed to load user links", zap.Uint("user_id", user.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve user links"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "links": links})
	}
}

// AdminListLinksHandler returns every link in the system with its owner's
// name and email attached.
func AdminListLinksHandler(authService *services.AuthService, linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := linkService.ListAllLinks()
		if err != nil {
			logger.Error("failed to list links", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve links"})
			return
		}

		users, err := authService.ListUsers()
		if err != nil {
			logger.Error("failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve links"})
			return
		}
		owners := make(map[uint]models.User, len(users))
		for _, u := range users {
			owners[u.ID] = u
		}

		out := make([]AdminLink, 0, len(links))
		for _, link := range links {
			owner := owners[link.UserID]
			out = append(out, AdminLink{
				Link:       link,
				OwnerName:  owner.Name,
				OwnerEmail: owner.Email,
			})
		}

		c.JSON(http.StatusOK, gin.H{"links": out})
	}
}
