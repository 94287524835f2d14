package middleware

import (
	"time"

	"kazicare_backend/internal/logger"
	"kazicare_backend/internal/ratelimit"
	"kazicare_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware enforces a per-user sliding window on the wrapped
// route. A denied request gets 429 with a retry_after hint in seconds.
// Must run after AuthMiddleware so the user id is available.
func RateLimitMiddleware(limiter ratelimit.Limiter, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		result, err := limiter.Allow(c.Request.Context(), userID, max, window)
		if err != nil {
			// Limiter failure never blocks the request.
			logger.CtxError(c.Request.Context(), "rate limiter error", "error", err)
			c.Next()
			return
		}

		if !result.Allowed {
			retryAfter := int(result.RetryAfter / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			apperrors.HandleError(c, apperrors.ErrRateLimited(retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
