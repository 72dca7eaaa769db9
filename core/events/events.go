package events

import (
	"context"
	"time"
)

// Event types published after a sync run.
const (
	TypeSyncCompleted = "sync.completed"
	TypeSyncFailed    = "sync.failed"
)

// Event is a sync lifecycle notification for the rest of the application.
type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Platform  string    `json:"platform"`
	Added     int       `json:"added,omitempty"`
	Updated   int       `json:"updated,omitempty"`
	Failed    int       `json:"failed,omitempty"`
	Total     int       `json:"total,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
