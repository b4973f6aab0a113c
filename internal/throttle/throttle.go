// Package throttle spaces out calls to a rate-limited synthesis service.
package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle is called before every call to the synthesis service except the
// first one of a batch.
type Throttle interface {
	Wait(ctx context.Context) error
}

// Fixed waits the same delay every time.
type Fixed struct {
	Delay time.Duration
}

// NewFixed creates a fixed-delay throttle.
func NewFixed(delay time.Duration) *Fixed {
	return &Fixed{Delay: delay}
}

// Wait sleeps for the delay. A cancelled context ends the wait early with
// the context's error.
func (f *Fixed) Wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TokenBucket allows a number of requests per minute with a burst of one.
// The token the bucket starts with is spent by the first Wait, so the call
// that preceded it counts against the rate.
type TokenBucket struct {
	limiter *rate.Limiter
	drain   sync.Once
}

// NewTokenBucket creates a token bucket throttle. requestsPerMinute must be
// positive.
func NewTokenBucket(requestsPerMinute int) *TokenBucket {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 50
	}
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

// Wait blocks until the bucket allows another request.
func (t *TokenBucket) Wait(ctx context.Context) error {
	t.drain.Do(func() { t.limiter.Allow() })
	return t.limiter.Wait(ctx)
}

// None never waits.
type None struct{}

// Wait returns immediately.
func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}
