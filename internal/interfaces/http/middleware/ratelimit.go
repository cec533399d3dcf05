package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subhub/internal/infrastructure/ratelimit"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

// RateLimit throttles requests per client IP. When the limiter backend is
// unavailable the request is allowed through rather than blocking traffic.
func RateLimit(limiter ratelimit.Limiter, config ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.ClientIP(), config)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
