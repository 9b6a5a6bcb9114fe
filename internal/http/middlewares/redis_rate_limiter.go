package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter enforces the same fixed-window policy as RateLimiter
// but shares the counters across instances via redis.
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, limit: limit, window: window}
}

func (rl *RedisRateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		rkey := "ratelimit:" + key
		ctx := c.Request.Context()

		count, err := rl.rdb.Incr(ctx, rkey).Result()

		if err != nil {
			// redis being down must not take auth down with it
			c.Next()
			return
		}

		if count == 1 {
			rl.rdb.Expire(ctx, rkey, rl.window)
		}

		if count > int64(rl.limit) {
			ttl, err := rl.rdb.TTL(ctx, rkey).Result()

			retryAfter := int(rl.window.Seconds())

			if err == nil && ttl > 0 {
				retryAfter = int(ttl.Seconds())
			}

			abortRateLimited(c, retryAfter)
			return
		}

		c.Next()
	}
}
