// Package ratelimit paces repeated suite iterations.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New builds a limiter allowing iterationsPerSecond runs with a burst of
// one; zero or negative disables pacing.
func New(iterationsPerSecond float64) *Limiter {
	limit := rate.Inf
	if iterationsPerSecond > 0 {
		limit = rate.Limit(iterationsPerSecond)
	}
	return &Limiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next iteration may start or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow is the non-blocking variant of Wait.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Limit reports the configured rate, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
