package platform

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthExpired means the stored credentials were rejected upstream.
	ErrAuthExpired = errors.New("platform authentication expired")
	// ErrUpstreamUnavailable means the platform could not be reached or answered with garbage.
	ErrUpstreamUnavailable = errors.New("platform unavailable")
	// ErrUnknownPlatform is returned by Parse.
	ErrUnknownPlatform = errors.New("unknown platform")
	// ErrSyncNotSupported means no adapter can sync the platform.
	ErrSyncNotSupported = errors.New("sync not supported for platform")
	// ErrQuotaExceeded is matched by *QuotaExceededError.
	ErrQuotaExceeded = errors.New("platform quota exceeded")
)

// QuotaExceededError reports a denied call against a platform's hourly budget.
type QuotaExceededError struct {
	Platform          Platform
	Remaining         int
	ResetAt           time.Time
	MinutesUntilReset int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s rate limit reached, try again in %d minutes", e.Platform, e.MinutesUntilReset)
}

// Is makes errors.Is(err, ErrQuotaExceeded) match.
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
