package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardsync/internal/infrastructure/ratelimit"
	"boardsync/internal/shared/logger"
	"boardsync/internal/shared/utils"
)

// RateLimit throttles an endpoint per client address. Limiter failures are
// logged and the request is let through; the webhook feed must not stall on
// a redis outage.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"client_ip", c.ClientIP(),
				"error", err)
			c.Next()
			return
		}

		if !allowed {
			log.Warnw("rate limit exceeded",
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
