package library

import (
	"context"
	"time"
)

// AggregatedEntry is one game across every platform the user owns it on.
type AggregatedEntry struct {
	GameID          string     `json:"game_id"`
	Platforms       []string   `json:"platforms"`
	Status          Status     `json:"status"`
	PlaytimeMinutes int        `json:"playtime_minutes"`
	LastPlayedAt    *time.Time `json:"last_played_at,omitempty"`
	Favorite        bool       `json:"favorite"`
}

// Aggregate folds per-platform rows into one entry per game: playtime is
// summed, the last-played time is the latest, the status is taken from the
// most recently updated row and favorite is set if any row has it.
// Games keep the order in which they first appear in entries.
func Aggregate(entries []Entry) []AggregatedEntry {
	index := make(map[string]int)
	updated := make(map[string]time.Time)
	var out []AggregatedEntry

	for _, e := range entries {
		i, ok := index[e.GameID]
		if !ok {
			index[e.GameID] = len(out)
			out = append(out, AggregatedEntry{GameID: e.GameID, Status: e.Status})
			updated[e.GameID] = e.UpdatedAt
			i = len(out) - 1
		}
		a := &out[i]
		a.Platforms = append(a.Platforms, e.Platform)
		a.PlaytimeMinutes += e.PlaytimeMinutes
		a.Favorite = a.Favorite || e.Favorite
		if e.LastPlayedAt != nil && (a.LastPlayedAt == nil || e.LastPlayedAt.After(*a.LastPlayedAt)) {
			t := *e.LastPlayedAt
			a.LastPlayedAt = &t
		}
		if e.UpdatedAt.After(updated[e.GameID]) {
			updated[e.GameID] = e.UpdatedAt
			a.Status = e.Status
		}
	}
	return out
}

// Library returns the user's aggregated library.
func (s *Store) Library(ctx context.Context, userID string) ([]AggregatedEntry, error) {
	entries, err := s.Entries(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return Aggregate(entries), nil
}
