package integrity

import (
	"context"

	"library-sync/core/database"
	"library-sync/core/storage"
	"library-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config names what the checks expect to find.
type Config struct {
	// Bucket is the storage bucket shared by catalog snapshots, exports and reports.
	Bucket string
	// CatalogObject is the catalog snapshot key.
	CatalogObject string
	// Prefixes are the folders that must exist in the bucket.
	Prefixes []string
	// Models are the GORM models whose tables must exist.
	Models []any
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	db     *gorm.DB
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, db *gorm.DB, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		client: client,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.cfg.Bucket, s.cfg.Prefixes)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.cfg.Bucket, s.logger, missing)
}

// CheckCatalog inspects the catalog snapshot.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalog(ctx, s.client, s.cfg.Bucket, s.cfg.CatalogObject)
}

// CheckSchema compares the database tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.cfg.Models...)
}

// FixSchema migrates the models.
func (s *Service) FixSchema() error {
	if err := database.Migrate(s.db, s.cfg.Models...); err != nil {
		return err
	}
	s.logger.Info("Migrated schema", zap.Int("models", len(s.cfg.Models)))
	return nil
}
