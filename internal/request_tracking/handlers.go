package request_tracking

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vlearn/vlearn-backend/internal/auth"
	"github.com/vlearn/vlearn-backend/internal/config"
	"github.com/vlearn/vlearn-backend/internal/logger"
)

// RateLimitStatusHandler returns the current rate limit status for the
// authenticated user.
func RateLimitStatusHandler(trackingService *Service, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserUUID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		reqLog := log.WithContext(c.Request.Context()).WithComponent("rate_limit_status")

		if !config.AppConfig.RateLimitEnabled {
			c.JSON(http.StatusOK, gin.H{
				"enabled": false,
				"message": "Rate limiting is disabled",
			})
			return
		}

		used, err := trackingService.GetUserRequestCountToday(c.Request.Context(), userID)
		if err != nil {
			reqLog.Error("failed to get request count",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get request count"})
			return
		}

		now := time.Now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		limit := config.AppConfig.RateLimitRequestsPerDay
		remaining := limit - used
		if remaining < 0 {
			remaining = 0
		}

		c.JSON(http.StatusOK, gin.H{
			"enabled":       config.AppConfig.RateLimitEnabled,
			"limit":         limit,
			"used":          used,
			"remaining":     remaining,
			"resets_at":     dayStart.Add(24 * time.Hour),
			"under_limit":   used < limit,
			"log_only_mode": config.AppConfig.RateLimitLogOnly,
		})
	}
}
