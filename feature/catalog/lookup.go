package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"library-sync/core/cache"
	"library-sync/core/metrics"
	"library-sync/core/ratelimit"
	"library-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LookupConfig tunes Lookup.
type LookupConfig struct {
	// BatchSize is the maximum number of titles per source call.
	BatchSize int
	// CacheTTL is how long alias results and seen entries are kept.
	CacheTTL time.Duration
	// LocalLimit caps the cached games returned by SearchLocal.
	LocalLimit int
}

// Lookup fronts the catalog: cached games in the database first, the
// rate-limited external source second.
type Lookup struct {
	store   *Store
	source  Source
	limiter *ratelimit.QueueLimiter
	metrics metrics.Recorder
	logger  *zap.Logger
	cfg     LookupConfig

	aliases *cache.Cache[*reconcile.Candidate]
	seen    *cache.Cache[Entry]
	sf      singleflight.Group
}

// NewLookup creates a Lookup. The limiter is shared by every caller in the process.
func NewLookup(store *Store, source Source, limiter *ratelimit.QueueLimiter, rec metrics.Recorder, logger *zap.Logger, cfg LookupConfig) *Lookup {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.LocalLimit <= 0 {
		cfg.LocalLimit = 200
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Lookup{
		store:   store,
		source:  source,
		limiter: limiter,
		metrics: rec,
		logger:  logger,
		cfg:     cfg,
		aliases: cache.New[*reconcile.Candidate](cfg.CacheTTL),
		seen:    cache.New[Entry](cfg.CacheTTL),
	}
}

// Store returns the underlying game store.
func (l *Lookup) Store() *Store {
	return l.store
}

func (l *Lookup) wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	waited, err := l.limiter.Wait(ctx)
	l.metrics.RecordLimiterWait(waited)
	return err
}

// Dedupe trims titles and drops empty and case-insensitive duplicates, keeping first occurrence order.
func Dedupe(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// BatchSearch searches the external catalog for titles in sequential chunks
// of at most BatchSize. A failing chunk is logged and skipped; if every chunk
// fails the error wraps ErrCatalogUnavailable.
func (l *Lookup) BatchSearch(ctx context.Context, titles []string) ([]Entry, error) {
	titles = Dedupe(titles)
	if len(titles) == 0 {
		return nil, nil
	}

	var (
		out     []Entry
		failed  int
		chunks  int
		lastErr error
	)
	for start := 0; start < len(titles); start += l.cfg.BatchSize {
		end := min(start+l.cfg.BatchSize, len(titles))
		chunk := titles[start:end]
		chunks++

		if err := l.wait(ctx); err != nil {
			return out, err
		}
		entries, err := l.source.Search(ctx, chunk)
		if err != nil {
			failed++
			lastErr = err
			l.logger.Warn("Catalog batch search failed",
				zap.Int("chunk", chunks),
				zap.Int("titles", len(chunk)),
				zap.Error(err),
			)
			continue
		}
		for _, e := range entries {
			l.seen.Put(strconv.FormatInt(e.CatalogID, 10), e)
		}
		out = append(out, entries...)
	}

	if failed == chunks {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, lastErr)
	}
	return out, nil
}

// AliasSearch searches one title against names and alternative names and
// returns the best candidate, or nil. Results, including misses, are cached.
func (l *Lookup) AliasSearch(ctx context.Context, title string) (*reconcile.Candidate, error) {
	key := strings.ToLower(strings.TrimSpace(title))
	if key == "" {
		return nil, nil
	}
	return l.aliases.GetOrLoad(ctx, key, func(ctx context.Context) (*reconcile.Candidate, error) {
		if err := l.wait(ctx); err != nil {
			return nil, err
		}
		entries, err := l.source.SearchWithAliases(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("alias search %q: %w", title, err)
		}
		if len(entries) == 0 {
			return nil, nil
		}
		best := entries[0]
		l.seen.Put(strconv.FormatInt(best.CatalogID, 10), best)
		return &reconcile.Candidate{CatalogID: best.CatalogID, Name: best.Name}, nil
	})
}

// SearchLocal returns cached games whose name contains any of titles.
func (l *Lookup) SearchLocal(ctx context.Context, titles []string) ([]reconcile.Candidate, error) {
	games, err := l.store.SearchByNames(ctx, Dedupe(titles), l.cfg.LocalLimit)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.Candidate, len(games))
	for i := range games {
		out[i] = games[i].Candidate()
	}
	return out, nil
}

// Ensure stores e unless its catalog id is already cached, returning the stored game.
func (l *Lookup) Ensure(ctx context.Context, e Entry) (*Game, error) {
	g, err := l.store.FindByCatalogID(ctx, e.CatalogID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrGameNotFound) {
		return nil, err
	}
	return l.store.CreateIfAbsent(ctx, e.ToGame())
}

// FindOrCreate returns the cached game for catalogID, fetching and storing
// it first if needed. Existing rows are returned unchanged.
func (l *Lookup) FindOrCreate(ctx context.Context, catalogID int64) (*Game, error) {
	if g, err := l.store.FindByCatalogID(ctx, catalogID); err == nil {
		return g, nil
	} else if !errors.Is(err, ErrGameNotFound) {
		return nil, err
	}

	key := strconv.FormatInt(catalogID, 10)
	v, err, _ := l.sf.Do(key, func() (any, error) {
		e, ok := l.seen.Get(key)
		if !ok {
			if err := l.wait(ctx); err != nil {
				return nil, err
			}
			fetched, err := l.source.Get(ctx, catalogID)
			if err != nil {
				return nil, err
			}
			e = *fetched
		}
		return l.Ensure(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Game), nil
}

// GameByID returns a cached game by internal id.
func (l *Lookup) GameByID(ctx context.Context, id string) (*Game, error) {
	return l.store.FindByID(ctx, id)
}
