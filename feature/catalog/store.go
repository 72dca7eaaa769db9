package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-sync/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists canonical games.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByID returns a game by internal id.
func (s *Store) FindByID(ctx context.Context, id string) (*Game, error) {
	var g Game
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindByCatalogID returns a game by catalog id.
func (s *Store) FindByCatalogID(ctx context.Context, catalogID int64) (*Game, error) {
	var g Game
	if err := s.db.WithContext(ctx).Where("catalog_id = ?", catalogID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchByNames returns cached games whose name contains any of titles,
// case-insensitively, ordered by name.
func (s *Store) SearchByNames(ctx context.Context, titles []string, limit int) ([]Game, error) {
	q := s.db.WithContext(ctx).Model(&Game{})

	var (
		conds []string
		args  []any
	)
	for _, t := range titles {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		conds = append(conds, "LOWER(name) LIKE ? ESCAPE '!'")
		args = append(args, "%"+likeEscaper.Replace(t)+"%")
	}
	if len(conds) == 0 {
		return nil, nil
	}

	q = q.Where(strings.Join(conds, " OR "), args...).Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var games []Game
	if err := q.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("search cached games: %w", err)
	}
	return games, nil
}

// CreateIfAbsent inserts g unless its catalog id exists, and returns the stored row.
func (s *Store) CreateIfAbsent(ctx context.Context, g *Game) (*Game, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "catalog_id"}}, DoNothing: true}).
		Create(g).Error
	if err != nil {
		return nil, fmt.Errorf("insert game %d: %w", g.CatalogID, err)
	}
	return s.FindByCatalogID(ctx, g.CatalogID)
}

// Candidate converts a stored game for the resolver.
func (g *Game) Candidate() reconcile.Candidate {
	return reconcile.Candidate{GameID: g.ID, CatalogID: g.CatalogID, Name: g.Name}
}
