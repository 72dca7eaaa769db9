package ratelimit

import (
	"math"
	"sync"
	"time"
)

// WindowLimiter enforces a hard cap of calls over a rolling window using a
// log of admission timestamps. It never blocks: callers decide what to do
// with a denial.
type WindowLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	log    []time.Time
	now    func() time.Time
}

// NewWindowLimiter creates a limiter admitting limit calls per window.
func NewWindowLimiter(limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		max:    limit,
		window: window,
		now:    time.Now,
	}
}

// TryAcquire admits the call and records it, or denies it without recording.
func (w *WindowLimiter) TryAcquire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.prune(now)
	if len(w.log) >= w.max {
		return false
	}
	w.log = append(w.log, now)
	return true
}

// Remaining returns how many calls would currently be admitted.
func (w *WindowLimiter) Remaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.prune(w.now())
	return max(w.max-len(w.log), 0)
}

// ResetAt returns when the oldest logged call leaves the window. It returns
// the current time when the log is empty.
func (w *WindowLimiter) ResetAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.prune(now)
	if len(w.log) == 0 {
		return now
	}
	return w.log[0].Add(w.window)
}

// MinutesUntilReset returns the whole minutes, rounded up, until a slot frees.
func (w *WindowLimiter) MinutesUntilReset() int {
	until := w.ResetAt().Sub(w.now())
	if until <= 0 {
		return 0
	}
	return int(math.Ceil(until.Minutes()))
}

// Max returns the number of calls admitted per window.
func (w *WindowLimiter) Max() int {
	return w.max
}

func (w *WindowLimiter) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	i := 0
	for i < len(w.log) && !w.log[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.log = append(w.log[:0], w.log[i:]...)
	}
}
