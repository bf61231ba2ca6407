package httpfetch

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRetryAfter is the backoff applied after a 429 response that
// carries no usable Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// RateLimitConfig holds rate limiting configuration for fetches.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. Zero or less disables limiting.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// RateLimiter throttles fetches with a token bucket and backs off after
// the server answers 429 Too Many Requests.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter from cfg.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimited.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimited sets a backoff period from a Retry-After header value,
// either delay-seconds or an HTTP date.
func (r *RateLimiter) RecordRateLimited(retryAfter string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(parseRetryAfter(retryAfter, time.Now()))
}

// RetryAt returns the end of the current backoff period, if any.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

func parseRetryAfter(value string, now time.Time) time.Duration {
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return DefaultRetryAfter
}
