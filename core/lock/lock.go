package lock

import (
	"context"
	"errors"
	"time"
)

// ErrLocked is returned by TryLock when the key is already held.
var ErrLocked = errors.New("lock already held")

// UnlockFunc releases a held lock. Releasing an expired or foreign lock is a no-op.
type UnlockFunc func(ctx context.Context) error

// Locker grants exclusive, expiring ownership of a key.
type Locker interface {
	// TryLock acquires key for at most ttl without waiting.
	// It returns ErrLocked when another holder owns the key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
