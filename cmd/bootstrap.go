package cmd

import (
	"context"
	"fmt"
	"slices"

	"library-sync/core/config"
	"library-sync/core/database"
	"library-sync/core/events"
	"library-sync/core/lock"
	"library-sync/core/logger"
	"library-sync/core/metrics"
	"library-sync/core/ratelimit"
	"library-sync/core/reconcile"
	"library-sync/core/storage"
	"library-sync/feature/catalog"
	"library-sync/feature/library"
	"library-sync/feature/mapping"
	"library-sync/feature/platform"
	"library-sync/feature/syncer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is the wired component graph shared by the server and the CLI commands.
type services struct {
	cfg    *config.Config
	logger *zap.Logger

	db       *gorm.DB
	store    storage.Client
	registry *prometheus.Registry

	lookup       *catalog.Lookup
	mappings     *mapping.Service
	library      *library.Store
	platforms    *platform.Registry
	orchestrator *syncer.Orchestrator

	closers []func() error
}

// bootstrap connects every backend named in cfg and wires the sync pipeline.
// The database and the storage client are required; Redis and Kafka fall
// back to process-local implementations when unconfigured.
func bootstrap(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*services, error) {
	s := &services{cfg: cfg, logger: logg}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db, syncModels()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	s.db = db
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		logg.Warn("Failed to ensure storage bucket", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}
	s.store = store

	s.registry = prometheus.NewRegistry()
	s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(s.registry)

	source := catalog.NewSnapshotSource(store, cfg.Storage.Bucket, cfg.Catalog.SnapshotObject, cfg.Catalog.CacheTTL, cfg.Catalog.MaxResultsPerTitle)
	s.lookup = catalog.NewLookup(
		catalog.NewStore(db),
		source,
		ratelimit.NewQueueLimiter(cfg.Catalog.RequestsPerSecond),
		rec,
		logg,
		catalog.LookupConfig{BatchSize: cfg.Catalog.BatchSize, CacheTTL: cfg.Catalog.CacheTTL},
	)

	normalizer := reconcile.NewNormalizer(cfg.Match.PlatformTokens, cfg.Match.BuildSuffixes, cfg.Match.EditionSuffixes)
	mappingStore := mapping.NewStore(db)
	s.mappings = mapping.NewService(mappingStore, s.lookup.Store(), normalizer, logg)

	resolver := reconcile.NewResolver(mappingStore, s.lookup)
	resolver.Normalizer = normalizer
	resolver.FuzzyThreshold = cfg.Match.FuzzyThreshold

	s.platforms = s.buildRegistry(rec)
	s.library = library.NewStore(db)

	var locker lock.Locker = lock.NewMemoryLocker()
	if cfg.Redis.URL != "" {
		redisLocker, client, err := lock.NewRedisLockerFromURL(cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		locker = redisLocker
		s.closers = append(s.closers, client.Close)
		logg.Info("Using redis sync locks")
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka)
	s.closers = append(s.closers, publisher.Close)

	var archiver syncer.Archiver
	if cfg.Sync.ReportPrefix != "" {
		archiver = syncer.NewStorageArchiver(store, cfg.Storage.Bucket, cfg.Sync.ReportPrefix, cfg.Sync.ReportRetention)
	}

	s.orchestrator = syncer.NewOrchestrator(syncer.Deps{
		Registry: s.platforms,
		Lookup:   s.lookup,
		Resolver: resolver,
		Library:  s.library,
		Locker:   locker,
		Events:   publisher,
		Archiver: archiver,
		Metrics:  rec,
		Logger:   logg,
	}, syncer.Config{
		ProgressEvery: cfg.Sync.ProgressEvery,
		ProgressStep:  cfg.Sync.ProgressStep,
		LockTTL:       cfg.Sync.LockTTL,
	})

	return s, nil
}

// buildRegistry registers an export adapter for every sync-enabled platform
// and puts the quota-scarce ones behind a windowed budget.
func (s *services) buildRegistry(rec metrics.Recorder) *platform.Registry {
	guarded := make([]platform.Platform, 0, len(s.cfg.Quota.Platforms))
	for _, name := range s.cfg.Quota.Platforms {
		p, err := platform.Parse(name)
		if err != nil {
			s.logger.Warn("Ignoring quota for unknown platform", zap.String("platform", name))
			continue
		}
		guarded = append(guarded, p)
	}

	registry := platform.NewRegistry()
	for _, p := range platform.All() {
		var adapter platform.Adapter = platform.NewExportAdapter(p, s.store, s.cfg.Storage.Bucket, s.cfg.Sync.ExportPrefix)
		if slices.Contains(guarded, p) {
			adapter = platform.NewQuotaGuard(adapter, ratelimit.NewWindowLimiter(s.cfg.Quota.MaxRequests, s.cfg.Quota.Window), rec)
		}
		registry.Register(adapter)
	}
	return registry
}

// syncModels lists every table the service owns.
func syncModels() []any {
	return append([]any{&catalog.Game{}, &mapping.TitleMapping{}}, library.Models()...)
}

// Close releases the optional backends.
func (s *services) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("Failed to close backend", zap.Error(err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// loadServices is the common prologue of every command: config, logger, bootstrap.
func loadServices(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)
	return bootstrap(ctx, cfg, logg)
}
