package middleware

import (
	"fmt"
	"time"

	"psfinder_backend/internal/logger"
	"psfinder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware enforces a fixed-window per-IP request limit backed
// by Redis. A Redis outage fails open: throttling is protection, not a
// correctness requirement.
func RateLimitMiddleware(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || perMinute <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.CtxWarn(ctx, "rate limiter unavailable, letting request through", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Minute)
		}

		if count > int64(perMinute) {
			retryAfter := 60 - time.Now().Unix()%60
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			appErr := apperrors.ErrRateLimitExceeded
			c.AbortWithStatusJSON(appErr.HTTPCode, apperrors.ErrorResponse{Error: appErr})
			return
		}

		c.Next()
	}
}
