package request_tracking

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vlearn/vlearn-backend/internal/auth"
	"github.com/vlearn/vlearn-backend/internal/config"
	"github.com/vlearn/vlearn-backend/internal/logger"
)

// RateLimitMiddleware enforces the daily generation request limit for
// authenticated users. Store errors fail open: a database outage must not
// take the generation endpoints down with it.
func RateLimitMiddleware(trackingService *Service, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AppConfig.RateLimitEnabled {
			c.Next()
			return
		}

		userID, exists := auth.GetUserUUID(c)
		if !exists {
			c.Next()
			return
		}

		log := logger.WithContext(c.Request.Context()).WithComponent("request_tracking")

		underLimit, err := trackingService.CheckRateLimit(c.Request.Context(), userID, config.AppConfig.RateLimitRequestsPerDay)
		if err != nil {
			log.Error("failed to check rate limit",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
			log.Warn("allowing request despite rate limit error (fail open)")
			c.Next()
			return
		}

		if !underLimit {
			if config.AppConfig.RateLimitLogOnly {
				log.Warn("daily request limit exceeded (log-only mode, allowing)",
					slog.String("user_id", userID),
					slog.Int64("limit", config.AppConfig.RateLimitRequestsPerDay))
				c.Next()
				return
			}

			log.Warn("daily request limit exceeded, blocking",
				slog.String("user_id", userID),
				slog.Int64("limit", config.AppConfig.RateLimitRequestsPerDay))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Daily request limit exceeded",
				"limit": config.AppConfig.RateLimitRequestsPerDay,
			})
			return
		}

		c.Next()
	}
}
