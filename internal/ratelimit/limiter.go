// Package ratelimit implements a fixed window request counter keyed by caller.
//
// Counters live in a Store so the same limiter runs against process memory in
// tests and single-instance deployments, and against Redis when several
// instances share a quota.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Defaults used when the limiter is built with non-positive values.
const (
	DefaultMaxRequests = 5
	DefaultWindow      = time.Minute
)

// Store counts hits per key inside a fixed window.
type Store interface {
	// Increment records one hit for key and returns the hit count in the
	// current window and when that window ends. A new window starts when the
	// previous one has expired.
	Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error)
}

// Result is the outcome of a single limiter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before the window resets.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Limiter applies a per-key quota using a Store.
type Limiter struct {
	store       Store
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewLimiter builds a limiter allowing maxRequests per window for each key.
func NewLimiter(store Store, maxRequests int, window time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{store: store, maxRequests: maxRequests, window: window, now: time.Now}
}

// Check records a hit for key and reports whether it is within quota.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	if l.store == nil {
		return Result{}, errors.New("rate limit store not configured")
	}
	count, resetAt, err := l.store.Increment(ctx, key, l.window, l.now())
	if err != nil {
		return Result{}, err
	}
	remaining := l.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= l.maxRequests,
		Limit:     l.maxRequests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
