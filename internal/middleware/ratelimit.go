package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Counter counts hits per key in fixed windows.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a Counter on Redis INCR. A window opens on the first hit
// and is never extended by later ones.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a RedisCounter.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	if client == nil {
		panic("Redis client cannot be nil for RedisCounter")
	}
	return &RedisCounter{client: client}
}

// Hit increments key and returns the count in the current window.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	// a key without TTL is a new window, or one whose EXPIRE was lost
	if ttlCmd.Val() < 0 {
		if err := c.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return incrCmd.Val(), nil
}

// RateLimit returns a fixed-window limiter keyed by client IP. Counters are
// kept under keyPrefix so several instances share one budget.
func RateLimit(counter Counter, keyPrefix string, maxRequests int, window time.Duration) gin.HandlerFunc {
	if counter == nil {
		panic("Counter cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 {
		panic("maxRequests must be positive for RateLimit middleware")
	}
	if window <= 0 {
		panic("window duration must be positive for RateLimit middleware")
	}

	return func(c *gin.Context) {
		// behind a proxy ClientIP relies on gin's trusted proxy settings
		key := keyPrefix + "ratelimit:" + c.ClientIP()

		count, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			logrus.WithError(err).Error("RateLimit: failed to count request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limiting error"})
			return
		}

		remaining := int64(maxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(maxRequests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
