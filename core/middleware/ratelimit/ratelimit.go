package ratelimit

import (
	"math"
	"strconv"
	"sync"
	"time"

	"library-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds the per-user trigger budget.
type Config struct {
	// PerHour is the number of requests each user may make per hour.
	PerHour int
	// CleanupInterval controls how often idle users are forgotten.
	CleanupInterval time.Duration
}

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter throttles requests per user id with a token bucket.
type Limiter struct {
	cfg    Config
	limit  rate.Limit
	logger *zap.Logger

	mu       sync.Mutex
	limiters map[string]*userLimiter

	stopCh chan struct{}
}

// New creates a Limiter and starts its cleanup loop. Call Stop to end it.
func New(cfg Config, logger *zap.Logger) *Limiter {
	if cfg.PerHour <= 0 {
		cfg.PerHour = 10
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Minute
	}
	l := &Limiter{
		cfg:      cfg,
		limit:    rate.Limit(float64(cfg.PerHour) / 3600),
		logger:   logger,
		limiters: make(map[string]*userLimiter),
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Stop ends the cleanup loop.
func (l *Limiter) Stop() {
	close(l.stopCh)
}

// Handler returns the fiber middleware. Requests without a user id are keyed by IP.
func (l *Limiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := auth.UserID(c)
		if key == "" {
			key = "ip:" + c.IP()
		}

		if !l.get(key).Allow() {
			retryAfter := int(math.Ceil(3600 / float64(l.cfg.PerHour)))
			l.logger.Warn("Sync trigger rate limit exceeded", zap.String("key", key))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many sync requests. Please try again later.",
				"retry_after": retryAfter,
			})
		}
		return c.Next()
	}
}

// Count returns the number of tracked keys.
func (l *Limiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ul, ok := l.limiters[key]; ok {
		ul.lastAccess = time.Now()
		return ul.limiter
	}
	ul := &userLimiter{
		limiter:    rate.NewLimiter(l.limit, l.cfg.PerHour),
		lastAccess: time.Now(),
	}
	l.limiters[key] = ul
	return ul.limiter
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

// cleanup forgets keys idle for over an hour; their buckets would be full again.
func (l *Limiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, ul := range l.limiters {
		if now.Sub(ul.lastAccess) > time.Hour {
			delete(l.limiters, key)
		}
	}
}
