package platform

import (
	"context"

	"library-sync/core/metrics"
	"library-sync/core/ratelimit"
)

// QuotaGuard puts a windowed budget in front of an adapter whose upstream
// API has a scarce hourly quota. Denied calls fail fast with a
// *QuotaExceededError instead of waiting for the window to reset.
type QuotaGuard struct {
	next    Adapter
	limiter *ratelimit.WindowLimiter
	metrics metrics.Recorder
}

// NewQuotaGuard wraps next. The limiter is shared by every user of the platform.
func NewQuotaGuard(next Adapter, limiter *ratelimit.WindowLimiter, rec metrics.Recorder) *QuotaGuard {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &QuotaGuard{next: next, limiter: limiter, metrics: rec}
}

// Platform implements Adapter.
func (g *QuotaGuard) Platform() Platform {
	return g.next.Platform()
}

// FetchLibrary implements Adapter.
func (g *QuotaGuard) FetchLibrary(ctx context.Context, creds Credentials) ([]ExternalGameRecord, error) {
	if !g.limiter.TryAcquire() {
		g.metrics.RecordQuotaDenied(g.Platform().String())
		return nil, &QuotaExceededError{
			Platform:          g.Platform(),
			Remaining:         g.limiter.Remaining(),
			ResetAt:           g.limiter.ResetAt(),
			MinutesUntilReset: g.limiter.MinutesUntilReset(),
		}
	}
	return g.next.FetchLibrary(ctx, creds)
}

// Remaining returns the calls left in the current window.
func (g *QuotaGuard) Remaining() int {
	return g.limiter.Remaining()
}
