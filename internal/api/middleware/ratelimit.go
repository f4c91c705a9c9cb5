package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"transport-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RateLimitConfig controls the fixed-window limiter.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 120,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:",
	}
}

// RateLimitMiddleware applies a Redis-backed fixed-window limit per client
// IP. When Redis is unavailable requests pass through unlimited; the limiter
// protects capacity, it is not an auth boundary.
func RateLimitMiddleware(redisClient *redis.Client, config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || !redisClient.IsConnected() {
			c.Next()
			return
		}

		client := redisClient.GetClient()
		key := fmt.Sprintf("%s%s:%d", config.KeyPrefix, c.ClientIP(), time.Now().Unix()/int64(config.Window.Seconds()))

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		pipe := client.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, config.Window)
		if _, err := pipe.Exec(ctx); err != nil {
			log.WithError(err).Debug("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(config.RequestsPerWindow) - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(config.RequestsPerWindow) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
