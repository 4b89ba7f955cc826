package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/metrics"
	"github.com/gin-gonic/gin"
)

const errTooManyRequests = "Too many requests, please try again later"

// RateLimiter counts requests per key in fixed windows.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	period    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:   make(map[string]*window),
		limit:     limit,
		period:    period,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow records one request for key. It reports whether the request fits in
// the current window, how many remain, and when the window resets.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		rl.windows[key] = w
	}
	reset := w.start.Add(rl.period)

	if w.count >= rl.limit {
		return false, 0, reset
	}
	w.count++
	return true, rl.limit - w.count, reset
}

// sweep drops expired windows at most once per period.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.period {
		return
	}
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.period {
			delete(rl.windows, key)
		}
	}
	rl.lastSweep = now
}

// RateLimit limits requests per client IP and reports the window in
// RateLimit-* headers.
func RateLimit(rl *RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "rate_limit")

	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, remaining, reset := rl.Allow(ip)

		c.Header("RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(int(math.Ceil(reset.Sub(rl.now()).Seconds()))))

		if !allowed {
			metrics.RateLimitedTotal.Inc()
			logger.WarnContext(c.Request.Context(), "rate limit exceeded",
				"ip", ip,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errTooManyRequests})
			return
		}
		c.Next()
	}
}
