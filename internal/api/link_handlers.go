package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/qr"
	"github.com/smartlink-app/smartlink/internal/services"
)

// CreateLinkRequest is the JSON body for link creation.
type CreateLinkRequest struct {
	OriginalURL string     `json:"originalUrl" binding:"required,url"`
	CustomAlias string     `json:"customAlias" binding:"omitempty,alphanum,max=32"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// UpdateLinkRequest is the JSON body for link updates. Pointer fields
// distinguish "not sent" from zero values.
type UpdateLinkRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// ListLinksHandler returns the authenticated user's links, newest first.
func ListLinksHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := linkService.ListUserLinks(currentUserID(c))
		if err != nil {
			logger.Error("failed to list links", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch links"})
			return
		}
		c.JSON(http.StatusOK, links)
	}
}

// CreateLinkHandler creates a new short link for the authenticated user.
func CreateLinkHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Original URL is required"})
			return
		}

		link, err := linkService.CreateLink(currentUserID(c), services.CreateLinkInput{
			OriginalURL: req.OriginalURL,
			CustomAlias: req.CustomAlias,
			Title:       req.Title,
			Description: req.Description,
			ExpiresAt:   req.ExpiresAt,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrAliasTaken):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Custom alias already taken"})
			case errors.Is(err, apperrors.ErrShortCodeGenerationFailed):
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to generate unique short code. Please try again later."})
			default:
				logger.Error("failed to create link", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create link"})
			}
			return
		}

		c.JSON(http.StatusCreated, link)
	}
}

// GetLinkHandler returns a single link owned by the authenticated user.
func GetLinkHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := linkIDParam(c)
		if !ok {
			return
		}

		link, err := linkService.GetUserLink(id, currentUserID(c))
		if err != nil {
			respondLinkError(c, err, "Failed to fetch link")
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

// UpdateLinkHandler updates title, description, active flag or expiry.
func UpdateLinkHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := linkIDParam(c)
		if !ok {
			return
		}

		var req UpdateLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
			return
		}

		link, err := linkService.UpdateLink(id, currentUserID(c), services.UpdateLinkInput{
			Title:       req.Title,
			Description: req.Description,
			IsActive:    req.IsActive,
			ExpiresAt:   req.ExpiresAt,
		})
		if err != nil {
			respondLinkError(c, err, "Failed to update link")
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

// DeleteLinkHandler deletes a link owned by the authenticated user.
func DeleteLinkHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := linkIDParam(c)
		if !ok {
			return
		}

		if err := linkService.DeleteLink(id, currentUserID(c)); err != nil {
			respondLinkError(c, err, "Failed to delete link")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Link deleted successfully"})
	}
}

// QRCodeHandler renders the link's short URL as a PNG data URL.
func QRCodeHandler(linkService *services.LinkService, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := linkIDParam(c)
		if !ok {
			return
		}

		link, err := linkService.GetUserLink(id, currentUserID(c))
		if err != nil {
			respondLinkError(c, err, "Failed to fetch link")
			return
		}

		shortURL := fmt.Sprintf("%s/%s", baseURL, link.ShortCode)
		dataURL, err := qr.DataURL(shortURL)
		if err != nil {
			logger.Error("failed to generate qr code", zap.Uint("link_id", link.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"qrCode": dataURL, "shortUrl": shortURL})
	}
}

// linkIDParam parses the :id path parameter, responding 400 on garbage.
func linkIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid link id"})
		return 0, false
	}
	return uint(id), true
}

func respondLinkError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, apperrors.ErrLinkNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Link not found"})
		return
	}
	logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}
