package syncer

import (
	"errors"
	"time"
)

// ErrSyncInProgress is returned when a run for the same user and platform is already active.
var ErrSyncInProgress = errors.New("sync already in progress")

// State is a sync run phase.
type State string

const (
	StateFetching   State = "fetching"
	StateSearching  State = "searching"
	StateResolving  State = "resolving"
	StateMerging    State = "merging"
	StateFinalizing State = "finalizing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Unrecognized is a record no cascade layer could match. Each one is a
// candidate for a manual title mapping.
type Unrecognized struct {
	RawTitle        string         `json:"raw_title"`
	NormalizedTitle string         `json:"normalized_title"`
	Platform        string         `json:"platform"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Result summarizes one sync run. Added, Updated, Unchanged and Failed add up to Total.
type Result struct {
	UserID        string         `json:"user_id"`
	Platform      string         `json:"platform"`
	Added         int            `json:"added"`
	Updated       int            `json:"updated"`
	Unchanged     int            `json:"unchanged"`
	Failed        int            `json:"failed"`
	Total         int            `json:"total"`
	NotRecognized []Unrecognized `json:"not_recognized"`
	Methods       map[string]int `json:"methods"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
}

// PlatformResult is one platform's outcome in a SyncAll batch.
type PlatformResult struct {
	Platform string  `json:"platform"`
	Result   *Result `json:"result,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Config tunes the orchestrator.
type Config struct {
	// ProgressEvery reports progress at least every N records.
	ProgressEvery int
	// ProgressStep reports progress whenever the percentage advances by this much.
	ProgressStep int
	// LockTTL bounds how long a crashed run holds the per-user platform lock.
	LockTTL time.Duration
}
