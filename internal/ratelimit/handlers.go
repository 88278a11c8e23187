package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleRateLimitStatus returns the current rate limit configuration and
// backend state for the requesting IP
func (rl *RateLimiter) HandleRateLimitStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"ip": c.ClientIP(),
			"limits": gin.H{
				"ip_per_minute": gin.H{
					"limit":  rl.config.IPLimit,
					"period": "1 minute",
				},
			},
			"backend":   rl.backendName(),
			"stats":     rl.GetStats(),
			"timestamp": time.Now().Format(time.RFC3339),
		}

		c.JSON(http.StatusOK, status)
	}
}

func (rl *RateLimiter) backendName() string {
	if rl.redisClient.IsEnabled() {
		return "redis"
	}
	if rl.config.EnableFallback {
		return "memory"
	}
	return "disabled"
}
