package mapping

import (
	"context"
	"fmt"
	"strings"

	"library-sync/core/reconcile"
	"library-sync/feature/catalog"
	"library-sync/feature/platform"

	"go.uber.org/zap"
)

// Service administers title mappings.
type Service struct {
	store      *Store
	games      *catalog.Store
	normalizer *reconcile.Normalizer
	logger     *zap.Logger
}

// NewService creates a Service.
func NewService(store *Store, games *catalog.Store, normalizer *reconcile.Normalizer, logger *zap.Logger) *Service {
	if normalizer == nil {
		normalizer = reconcile.NewNormalizer(nil, nil, nil)
	}
	return &Service{store: store, games: games, normalizer: normalizer, logger: logger}
}

// Store returns the underlying store, which the resolver uses as its mapping lookup.
func (s *Service) Store() *Store {
	return s.store
}

// canonicalPlatform returns the stored form of a platform name, the same
// form the sync run looks mappings up by.
func canonicalPlatform(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidMapping
	}
	p, err := platform.Parse(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMapping, err)
	}
	return p.String(), nil
}

// Create maps (platform, title) to gameID, replacing any previous target.
func (s *Service) Create(ctx context.Context, platformName, title, gameID, createdBy string) (*TitleMapping, error) {
	p, err := canonicalPlatform(platformName)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" || gameID == "" {
		return nil, ErrInvalidMapping
	}
	if _, err := s.games.FindByID(ctx, gameID); err != nil {
		return nil, err
	}

	m, err := s.store.Upsert(ctx, &TitleMapping{
		Platform:        p,
		OriginalTitle:   title,
		NormalizedTitle: s.normalizer.Normalize(title),
		GameID:          gameID,
		CreatedBy:       createdBy,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Title mapping saved",
		zap.String("platform", p),
		zap.String("title", title),
		zap.String("game_id", gameID),
	)
	return m, nil
}

// Delete removes the mapping for (platform, title).
func (s *Service) Delete(ctx context.Context, platformName, title string) error {
	p, err := canonicalPlatform(platformName)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, p, strings.TrimSpace(title)); err != nil {
		return err
	}
	s.logger.Info("Title mapping removed", zap.String("platform", p), zap.String("title", title))
	return nil
}

// List returns mappings, optionally for one platform.
func (s *Service) List(ctx context.Context, platformName string) ([]TitleMapping, error) {
	if platformName == "" {
		return s.store.List(ctx, "")
	}
	p, err := canonicalPlatform(platformName)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, p)
}
