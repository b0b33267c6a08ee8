package http

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/shop-directory/pkg/util"
)

// Atomically increment the counter and set its expiry on first hit.
var incrExpireScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if tonumber(current) == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RateLimitOptions configures a fixed-window limiter.
type RateLimitOptions struct {
	Prefix string
	Max    int
	Window time.Duration
	// KeyFunc derives the bucket for a request. Defaults to the client IP.
	KeyFunc func(*fiber.Ctx) string
}

// RateLimit limits requests per key within a fixed window stored in Redis.
// A nil client or disabled options pass every request through. Redis errors
// fail open.
func RateLimit(rdb *redis.Client, logger *zap.Logger, opts RateLimitOptions) fiber.Handler {
	if rdb == nil || opts.Max <= 0 || opts.Window <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if opts.Prefix == "" {
		opts.Prefix = "rl"
	}
	if opts.KeyFunc == nil {
		opts.KeyFunc = func(c *fiber.Ctx) string { return c.IP() }
	}

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		key := opts.Prefix + ":" + opts.KeyFunc(c)

		count, err := incrExpireScript.Run(ctx, rdb, []string{key}, opts.Window.Milliseconds()).Int()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		ttl, err := rdb.PTTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = opts.Window
		}
		resetSeconds := int(math.Ceil(ttl.Seconds()))

		remaining := opts.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(opts.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.Itoa(resetSeconds))

		if count > opts.Max {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(resetSeconds))
			return apperrors.NewTooManyRequests("too many attempts, try again later")
		}
		return c.Next()
	}
}
