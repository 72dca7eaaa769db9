package platform

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ExternalGameRecord is one title as reported by a platform.
type ExternalGameRecord struct {
	ExternalID      string         `json:"external_id"`
	Name            string         `json:"name"`
	PlaytimeMinutes int            `json:"playtime_minutes"`
	LastPlayedAt    *time.Time     `json:"last_played_at,omitempty"`
	Platform        Platform       `json:"platform"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Credentials identify the user on the platform.
type Credentials struct {
	UserID         string
	PlatformUserID string
	Username       string
	AccessToken    string
	RefreshToken   string
}

// Adapter fetches a user's library from one platform. It owns pagination
// and fails with ErrAuthExpired or ErrUpstreamUnavailable.
type Adapter interface {
	Platform() Platform
	FetchLibrary(ctx context.Context, creds Credentials) ([]ExternalGameRecord, error)
}

// Registry maps platforms to adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[Platform]Adapter
}

// NewRegistry creates a Registry holding adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[Platform]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces the adapter for a.Platform().
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	r.adapters[a.Platform()] = a
	r.mu.Unlock()
}

// Get returns the adapter for p. Known platforms without an adapter, or
// whose capabilities disable sync, yield ErrSyncNotSupported.
func (r *Registry) Get(p Platform) (Adapter, error) {
	caps, ok := p.Capabilities()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	if !caps.SyncSupported {
		return nil, fmt.Errorf("%w: %s", ErrSyncNotSupported, p)
	}

	r.mu.RLock()
	a, ok := r.adapters[p]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSyncNotSupported, p)
	}
	return a, nil
}

// Platforms returns the platforms with a registered adapter.
func (r *Registry) Platforms() []Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Platform
	for _, p := range All() {
		if _, ok := r.adapters[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
