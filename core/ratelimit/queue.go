package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// QueueLimiter spaces calls evenly at a fixed rate. Callers are admitted in the
// order they arrive and are delayed, never rejected.
type QueueLimiter struct {
	limiter *rate.Limiter
	pending atomic.Int64
}

// NewQueueLimiter creates a limiter admitting perSecond calls per second.
// A non-positive rate disables limiting.
func NewQueueLimiter(perSecond float64) *QueueLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &QueueLimiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the caller's turn. It returns the time spent waiting and
// an error only if ctx ends first.
func (q *QueueLimiter) Wait(ctx context.Context) (time.Duration, error) {
	q.pending.Add(1)
	defer q.pending.Add(-1)

	start := time.Now()
	err := q.limiter.Wait(ctx)
	return time.Since(start), err
}

// Pending returns the number of callers currently waiting.
func (q *QueueLimiter) Pending() int {
	return int(q.pending.Load())
}

// Rate returns the configured calls per second.
func (q *QueueLimiter) Rate() float64 {
	return float64(q.limiter.Limit())
}
