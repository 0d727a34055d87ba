package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/services"
)

// HealthCheckHandler reports service status including current database
// connectivity.
func HealthCheckHandler(store *repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "connected"
		if err := store.Ping(c.Request.Context()); err != nil {
			database = "disconnected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
		})
	}
}

// RedirectHandler resolves a short code, records the click and redirects the
// client to the original URL. Both the counter increment and the analytics
// write have completed by the time the 302 is sent. The destination URL is
// used verbatim; no re-validation happens at redirect time.
func RedirectHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shortCode := c.Param("shortCode")

		visit := services.Visit{
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Referer:   c.GetHeader("Referer"),
		}

		link, err := linkService.ResolveAndRecord(shortCode, visit)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrLinkNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Link not found"})
			case errors.Is(err, apperrors.ErrLinkExpired):
				c.JSON(http.StatusGone, gin.H{"message": "Link expired"})
			default:
				logger.Error("redirect failed",
					zap.String("short_code", shortCode),
					zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			}
			return
		}

		c.Redirect(http.StatusFound, link.OriginalURL)
	}
}
