package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Outcome is what Merge did to the library.
type Outcome int

const (
	Unchanged Outcome = iota
	Added
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	}
	return "unchanged"
}

// MergeInput is one matched platform record.
type MergeInput struct {
	UserID          string
	GameID          string
	Platform        string
	ExternalID      string
	PlaytimeMinutes int
	LastPlayedAt    *time.Time
}

// Merge upserts the entry keyed by (user, game, platform). New entries start
// as playing when playtime is positive, owned otherwise. Existing entries are
// only written when playtime grows or the last-played time moves forward, so
// repeated syncs of unchanged data are no-ops and neither value regresses.
func (s *Store) Merge(ctx context.Context, in MergeInput) (Outcome, error) {
	if in.PlaytimeMinutes < 0 {
		in.PlaytimeMinutes = 0
	}

	var outcome Outcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.lockEntry(tx, in)
		if err != nil {
			return err
		}

		if existing == nil {
			entry := &Entry{
				UserID:          in.UserID,
				GameID:          in.GameID,
				Platform:        in.Platform,
				ExternalID:      in.ExternalID,
				Status:          InitialStatus(in.PlaytimeMinutes),
				PlaytimeMinutes: in.PlaytimeMinutes,
				LastPlayedAt:    in.LastPlayedAt,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
			if res.Error != nil {
				return fmt.Errorf("create library entry: %w", res.Error)
			}
			if res.RowsAffected == 1 {
				outcome = Added
				return nil
			}
			// a concurrent run inserted the row first
			if existing, err = s.lockEntry(tx, in); err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("library entry for game %s vanished", in.GameID)
			}
		}

		updates := map[string]any{}
		if in.PlaytimeMinutes > existing.PlaytimeMinutes {
			updates["playtime_minutes"] = in.PlaytimeMinutes
		}
		if in.LastPlayedAt != nil && (existing.LastPlayedAt == nil || in.LastPlayedAt.After(*existing.LastPlayedAt)) {
			updates["last_played_at"] = *in.LastPlayedAt
		}
		if len(updates) == 0 {
			outcome = Unchanged
			return nil
		}
		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("update library entry: %w", err)
		}
		outcome = Updated
		return nil
	})
	if err != nil {
		return Unchanged, err
	}
	return outcome, nil
}

// lockEntry reads the entry for in, holding a row lock where the dialect supports it.
func (s *Store) lockEntry(tx *gorm.DB, in MergeInput) (*Entry, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var e Entry
	err := q.Where("user_id = ? AND game_id = ? AND platform = ?", in.UserID, in.GameID, in.Platform).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read library entry: %w", err)
	}
	return &e, nil
}
