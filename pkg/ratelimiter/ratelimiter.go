package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// CounterStore counts requests per key inside a fixed window. The first
// increment of a key opens the window; the key expires with it, which is
// the only way a counter resets.
type CounterStore interface {
	// Incr bumps the counter for key, returning the post-increment count
	// and the time left until the window expires.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RateLimitError reports an exhausted window budget.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// Limiter enforces a (max requests, window) budget per (route, caller) key.
type Limiter struct {
	store CounterStore
}

func New(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Allow records one request for the caller on the route and returns a
// *RateLimitError once the budget for the current window is spent.
// Store failures surface as plain errors so the caller decides whether
// to fail open.
func (l *Limiter) Allow(ctx context.Context, route, caller string, max int64, window time.Duration) error {
	key := fmt.Sprintf("rate_limit:%s:%s", route, caller)

	count, ttl, err := l.store.Incr(ctx, key, window)
	if err != nil {
		return fmt.Errorf("rate limit counter for %s: %w", route, err)
	}

	if count > max {
		if ttl < 0 {
			ttl = window
		}
		return &RateLimitError{
			Message:    "Too many requests. Please try again later.",
			RetryAfter: ttl,
		}
	}
	return nil
}
