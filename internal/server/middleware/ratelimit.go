package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a token-bucket limiter keyed by client IP. When a bucket is
// empty, Allow also reports how long until it refills so the handler can
// answer with a Retry-After header.
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	cleanupC chan struct{}
	rate     int
	window   time.Duration
	mu       sync.RWMutex
}

// bucket tracks remaining tokens for one key
type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		cleanupC: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// cleanup periodically drops idle buckets to bound memory
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, b := range rl.buckets {
		b.mu.Lock()
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
		b.mu.Unlock()
	}
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.cleanupC)
}

// Allow reports whether a request for key may proceed. When it may not, the
// second return value is the wait until the bucket refills.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.RLock()
	b, exists := rl.buckets[key]
	rl.mu.RUnlock()

	if !exists {
		b = &bucket{
			tokens:     rl.rate,
			lastRefill: time.Now(),
		}
		rl.mu.Lock()
		rl.buckets[key] = b
		rl.mu.Unlock()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill)

	if elapsed >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true, 0
	}

	return false, rl.window - now.Sub(b.lastRefill)
}

// PathRateLimit assigns a dedicated limit to one path.
type PathRateLimit struct {
	Path   string
	Rate   int
	Window time.Duration
}

// RateLimitMiddleware limits requests per client IP. Rejected requests get
// 429 with a Retry-After header in whole seconds, rounded up.
func RateLimitMiddleware(rate int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, window, logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r)

			allowed, retryAfter := limiter.Allow(key)
			if !allowed {
				rejectRateLimited(w, r, logger, key, retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByPathMiddleware applies per-path limits with a default for every
// other path. The save endpoint gets a tighter budget than the rest of the
// API.
func RateLimitByPathMiddleware(limits []PathRateLimit, defaultRate int, defaultWindow time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	limiters := make(map[string]*RateLimiter)
	for _, limit := range limits {
		limiters[limit.Path] = NewRateLimiter(limit.Rate, limit.Window, logger)
	}

	defaultLimiter := NewRateLimiter(defaultRate, defaultWindow, logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter, exists := limiters[r.URL.Path]
			if !exists {
				limiter = defaultLimiter
			}

			key := getClientIP(r)
			allowed, retryAfter := limiter.Allow(key)
			if !allowed {
				rejectRateLimited(w, r, logger, key, retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	logger.Warn("rate limit exceeded",
		"ip", key,
		"method", r.Method,
		"path", r.URL.Path,
		"retry_after_s", seconds,
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"detail":"rate limit exceeded, please try again later"}`))
}

// getClientIP extracts the client IP, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First address in the list is the real client
		for idx := 0; idx < len(xff); idx++ {
			if xff[idx] == ',' {
				return xff[:idx]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
