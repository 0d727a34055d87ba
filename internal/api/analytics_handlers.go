package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/services"
)

// LinkAnalyticsHandler returns the aggregated click statistics of one link.
func LinkAnalyticsHandler(analyticsService *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkID, err := strconv.ParseUint(c.Param("linkId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid link id"})
			return
		}

		stats, err := analyticsService.GetLinkAnalytics(uint(linkID), currentUserID(c))
		if err != nil {
			if errors.Is(err, apperrors.ErrLinkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Link not found"})
				return
			}
			logger.Error("failed to fetch analytics", zap.Uint64("link_id", linkID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// DashboardStatsHandler summarizes all links of the authenticated user.
func DashboardStatsHandler(analyticsService *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := analyticsService.GetDashboardStats(currentUserID(c))
		if err != nil {
			logger.Error("failed to fetch dashboard stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dashboard stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
