package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

// defaultRateLimitTimeout bounds how long a request waits on Redis before
// the limiter lets it through
const defaultRateLimitTimeout = 100 * time.Millisecond

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Timeout for the Redis round trip
	Timeout time.Duration
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// Custom limit exceeded handler
	LimitReached fiber.Handler
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:          120,
		Window:       time.Minute,
		Timeout:      defaultRateLimitTimeout,
		KeyGenerator: ClientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too Many Requests",
				"message": "Rate limit exceeded. Please try again later.",
			})
		},
	}
}

// ClientKey identifies authenticated users by id and everyone else by IP
func ClientKey(c *fiber.Ctx) string {
	if userID, ok := GetUserID(c); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + c.IP()
}

// RateLimitMiddleware limits requests per client with a fixed window
// counter kept in Redis
type RateLimitMiddleware struct {
	redis  redis.Cmdable
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(redisClient redis.Cmdable, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = ClientKey
	}
	if cfg.LimitReached == nil {
		cfg.LimitReached = DefaultRateLimitConfig().LimitReached
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRateLimitTimeout
	}

	return &RateLimitMiddleware{
		redis:  redisClient,
		config: cfg,
		now:    time.Now,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		window := int64(m.config.Window.Seconds())
		now := m.now().Unix()
		windowStart := now - now%window
		reset := windowStart + window
		key := fmt.Sprintf("ratelimit:%s:%d", m.config.KeyGenerator(c), windowStart)

		count, err := m.hit(c.UserContext(), key)
		if err != nil {
			// an unavailable Redis must not take the shop offline
			logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		remaining := max(m.config.Max-int(count), 0)
		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > int64(m.config.Max) {
			c.Set("Retry-After", strconv.FormatInt(reset-now, 10))
			return m.config.LimitReached(c)
		}

		return c.Next()
	}
}

func (m *RateLimitMiddleware) hit(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	var incr *redis.IntCmd
	_, err := m.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, m.config.Window*2)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
