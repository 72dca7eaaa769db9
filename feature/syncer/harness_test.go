package syncer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"library-sync/core/database"
	"library-sync/core/events"
	"library-sync/core/lock"
	"library-sync/core/ratelimit"
	"library-sync/core/reconcile"
	"library-sync/feature/catalog"
	"library-sync/feature/library"
	"library-sync/feature/mapping"
	"library-sync/feature/platform"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSource struct {
	mu       sync.Mutex
	entries  []catalog.Entry
	searches int
}

func (f *fakeSource) Search(_ context.Context, titles []string) ([]catalog.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	var out []catalog.Entry
	for _, t := range titles {
		for _, e := range f.entries {
			if strings.Contains(strings.ToLower(e.Name), strings.ToLower(t)) {
				e.Query = t
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeSource) SearchWithAliases(context.Context, string) ([]catalog.Entry, error) {
	return nil, nil
}

func (f *fakeSource) Get(_ context.Context, id int64) (*catalog.Entry, error) {
	for _, e := range f.entries {
		if e.CatalogID == id {
			return &e, nil
		}
	}
	return nil, catalog.ErrGameNotFound
}

type fakeAdapter struct {
	platform platform.Platform
	records  []platform.ExternalGameRecord
	err      error
}

func (a *fakeAdapter) Platform() platform.Platform { return a.platform }

func (a *fakeAdapter) FetchLibrary(context.Context, platform.Credentials) ([]platform.ExternalGameRecord, error) {
	return a.records, a.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeArchiver struct {
	mu      sync.Mutex
	results []*Result
}

func (a *fakeArchiver) Archive(_ context.Context, r *Result) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, r)
	return nil
}

func (a *fakeArchiver) Latest(context.Context, string, string) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.results) == 0 {
		return nil, ErrNoReport
	}
	return a.results[len(a.results)-1], nil
}

type harness struct {
	db       *gorm.DB
	source   *fakeSource
	adapter  *fakeAdapter
	registry *platform.Registry
	library  *library.Store
	mappings *mapping.Store
	lookup   *catalog.Lookup
	locker   *lock.MemoryLocker
	events   *fakePublisher
	archiver *fakeArchiver
	orch     *Orchestrator
}

func newHarness(t *testing.T, entries ...catalog.Entry) *harness {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	models := append([]any{&catalog.Game{}, &mapping.TitleMapping{}}, library.Models()...)
	require.NoError(t, database.Migrate(db, models...))

	h := &harness{
		db:       db,
		source:   &fakeSource{entries: entries},
		adapter:  &fakeAdapter{platform: platform.Steam},
		library:  library.NewStore(db),
		mappings: mapping.NewStore(db),
		locker:   lock.NewMemoryLocker(),
		events:   &fakePublisher{},
		archiver: &fakeArchiver{},
	}
	h.registry = platform.NewRegistry(h.adapter)
	h.lookup = catalog.NewLookup(catalog.NewStore(db), h.source, ratelimit.NewQueueLimiter(0), nil, zap.NewNop(),
		catalog.LookupConfig{BatchSize: 10, CacheTTL: time.Minute})
	h.orch = NewOrchestrator(Deps{
		Registry: h.registry,
		Lookup:   h.lookup,
		Resolver: reconcile.NewResolver(h.mappings, h.lookup),
		Library:  h.library,
		Locker:   h.locker,
		Events:   h.events,
		Archiver: h.archiver,
		Logger:   zap.NewNop(),
	}, Config{ProgressEvery: 10, ProgressStep: 5, LockTTL: time.Minute})
	return h
}

func (h *harness) connect(t *testing.T, userID string, p platform.Platform) {
	t.Helper()
	_, err := h.library.Connect(context.Background(), library.ConnectInput{UserID: userID, Platform: p.String(), PlatformUserID: "acct-" + userID})
	require.NoError(t, err)
}
