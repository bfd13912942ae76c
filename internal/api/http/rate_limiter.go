package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/bursa-register/internal/auth"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

const msgRateLimited = "Terlalu banyak upload. Coba lagi sebentar lagi."

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UploadLimiter throttles media uploads per signed-in user, falling back to
// the client IP. Keys unused for a full refill window are dropped by Sweep.
type UploadLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewUploadLimiter allows perMinute uploads per key with an equal burst.
// A non-positive perMinute disables limiting.
func NewUploadLimiter(perMinute int, logger *zap.Logger) *UploadLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &UploadLimiter{
		limiters: make(map[string]*limiterEntry),
		idle:     time.Minute,
		now:      time.Now,
		logger:   logger,
	}
	if perMinute > 0 {
		l.limit = rate.Every(time.Minute / time.Duration(perMinute))
		l.burst = perMinute
	}
	return l
}

func (l *UploadLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = l.now()
	return entry.limiter
}

// Sweep drops limiters idle for at least a refill window and returns how
// many were removed. A dropped key starts again with a full burst, which is
// the state its limiter had reached anyway.
func (l *UploadLimiter) Sweep() int {
	cutoff := l.now().Add(-l.idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, entry := range l.limiters {
		if !entry.lastSeen.After(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *UploadLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Run sweeps on every interval until ctx is cancelled.
func (l *UploadLimiter) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 && onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

// Handle rejects the request with 429 once the caller's budget is spent.
func (l *UploadLimiter) Handle(c *fiber.Ctx) error {
	if l.burst == 0 {
		return c.Next()
	}
	key := c.IP()
	if principal, ok := auth.PrincipalFromContext(c); ok {
		key = principal.Subject
	}
	if !l.limiter(key).Allow() {
		l.logger.Warn("upload rate limit exceeded", zap.String("key", key))
		return apperrors.NewTooManyRequests(msgRateLimited)
	}
	return c.Next()
}
