package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists title mappings.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindMapping returns the game id mapped for (platform, rawTitle).
// It satisfies reconcile.MappingLookup.
func (s *Store) FindMapping(ctx context.Context, platform, rawTitle string) (string, bool, error) {
	var m TitleMapping
	err := s.db.WithContext(ctx).
		Where("platform = ? AND original_title = ?", platform, strings.TrimSpace(rawTitle)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find mapping: %w", err)
	}
	return m.GameID, true, nil
}

// Upsert creates the mapping or repoints an existing one for the same (platform, original title).
func (s *Store) Upsert(ctx context.Context, m *TitleMapping) (*TitleMapping, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "original_title"}},
			DoUpdates: clause.AssignmentColumns([]string{"game_id", "normalized_title", "created_by", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return nil, fmt.Errorf("upsert mapping: %w", err)
	}
	return s.Get(ctx, m.Platform, m.OriginalTitle)
}

// Get returns one mapping.
func (s *Store) Get(ctx context.Context, platform, title string) (*TitleMapping, error) {
	var m TitleMapping
	err := s.db.WithContext(ctx).
		Where("platform = ? AND original_title = ?", platform, title).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMappingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mapping: %w", err)
	}
	return &m, nil
}

// Delete removes one mapping.
func (s *Store) Delete(ctx context.Context, platform, title string) error {
	res := s.db.WithContext(ctx).
		Where("platform = ? AND original_title = ?", platform, title).
		Delete(&TitleMapping{})
	if res.Error != nil {
		return fmt.Errorf("delete mapping: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMappingNotFound
	}
	return nil
}

// List returns mappings ordered by platform and title. An empty platform lists all.
func (s *Store) List(ctx context.Context, platform string) ([]TitleMapping, error) {
	q := s.db.WithContext(ctx).Order("platform ASC, original_title ASC")
	if platform != "" {
		q = q.Where("platform = ?", platform)
	}
	var out []TitleMapping
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	return out, nil
}
