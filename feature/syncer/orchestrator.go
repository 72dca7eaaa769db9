package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-sync/core/events"
	"library-sync/core/lock"
	"library-sync/core/logger"
	"library-sync/core/metrics"
	"library-sync/core/reconcile"
	"library-sync/feature/catalog"
	"library-sync/feature/library"
	"library-sync/feature/platform"

	"go.uber.org/zap"
)

// Deps are the collaborators of an Orchestrator. Locker, Events, Archiver
// and Metrics are optional.
type Deps struct {
	Registry *platform.Registry
	Lookup   *catalog.Lookup
	Resolver *reconcile.Resolver
	Library  *library.Store
	Locker   lock.Locker
	Events   events.Publisher
	Archiver Archiver
	Metrics  metrics.Recorder
	Logger   *zap.Logger
}

// Orchestrator runs library syncs: fetch, search, resolve, merge, finalize.
// Runs for different users proceed concurrently and share the injected rate
// limiters; runs for the same user and platform are mutually exclusive.
type Orchestrator struct {
	Deps
	cfg Config
	now func() time.Time
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(deps Deps, cfg Config) *Orchestrator {
	if deps.Locker == nil {
		deps.Locker = lock.NewMemoryLocker()
	}
	if deps.Events == nil {
		deps.Events = events.NopPublisher{}
	}
	if deps.Archiver == nil {
		deps.Archiver = nopArchiver{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Minute
	}
	return &Orchestrator{Deps: deps, cfg: cfg, now: time.Now}
}

func lockKey(userID string, p platform.Platform) string {
	return "sync:" + userID + ":" + p.String()
}

// Sync runs one sync for (userID, p). Only run-fatal errors are returned:
// unknown or unconnected platforms, adapter failures, quota denials, catalog
// outages and a concurrent run. Per-record problems are counted in the result.
func (o *Orchestrator) Sync(ctx context.Context, userID string, p platform.Platform, progress ProgressFunc) (*Result, error) {
	l := logger.WithSync(o.Logger, userID, p.String())

	conn, err := o.Library.ActiveConnection(ctx, userID, p.String())
	if err != nil {
		return nil, err
	}
	adapter, err := o.Registry.Get(p)
	if err != nil {
		return nil, err
	}

	unlock, err := o.Locker.TryLock(ctx, lockKey(userID, p), o.cfg.LockTTL)
	if errors.Is(err, lock.ErrLocked) {
		o.Metrics.RecordSyncRun(p.String(), metrics.OutcomeInProgress, 0)
		return nil, ErrSyncInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock: %w", err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			l.Warn("Failed to release sync lock", zap.Error(err))
		}
	}()

	norm := o.Resolver.Normalizer
	if norm == nil {
		norm = reconcile.NewNormalizer(nil, nil, nil)
	}

	started := o.now()
	r := &run{
		o:       o,
		logger:  l,
		norm:    norm,
		adapter: adapter,
		creds: platform.Credentials{
			UserID:         userID,
			PlatformUserID: conn.PlatformUserID,
			Username:       conn.Username,
			AccessToken:    conn.AccessToken,
			RefreshToken:   conn.RefreshToken,
		},
		tracker: newTracker(progress, o.cfg.ProgressEvery, o.cfg.ProgressStep),
		result: &Result{
			UserID:        userID,
			Platform:      p.String(),
			NotRecognized: []Unrecognized{},
			Methods:       map[string]int{},
			StartedAt:     started,
		},
	}

	result, runErr := r.execute(ctx)
	finished := o.now()
	if runErr != nil {
		o.fail(ctx, l, userID, p, finished, started, runErr)
		r.tracker.report(StateFailed, r.tracker.last, runErr.Error())
		return nil, runErr
	}

	result.FinishedAt = finished
	if err := o.Library.RecordSyncSuccess(ctx, userID, p.String(), finished); err != nil {
		l.Error("Failed to record sync success", zap.Error(err))
	}
	if err := o.Archiver.Archive(ctx, result); err != nil {
		l.Warn("Failed to archive sync report", zap.Error(err))
	}
	o.publish(ctx, l, events.Event{
		Type:      events.TypeSyncCompleted,
		UserID:    userID,
		Platform:  p.String(),
		Added:     result.Added,
		Updated:   result.Updated,
		Failed:    result.Failed,
		Total:     result.Total,
		Timestamp: finished,
	})
	o.Metrics.RecordSyncRun(p.String(), metrics.OutcomeSuccess, finished.Sub(started))
	o.Metrics.RecordUnrecognized(p.String(), len(result.NotRecognized))

	l.Info("Sync completed",
		zap.String("state", string(StateCompleted)),
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("failed", result.Failed),
		zap.Int("total", result.Total),
		zap.Duration("duration", finished.Sub(started)),
	)
	r.tracker.report(StateCompleted, 100, fmt.Sprintf("Sync complete: %d added, %d updated", result.Added, result.Updated))
	return result, nil
}

func (o *Orchestrator) fail(ctx context.Context, l *zap.Logger, userID string, p platform.Platform, at, started time.Time, runErr error) {
	l.Error("Sync failed", zap.String("state", string(StateFailed)), zap.Error(runErr))
	if err := o.Library.RecordSyncFailure(ctx, userID, p.String(), at, runErr.Error()); err != nil {
		l.Error("Failed to record sync failure", zap.Error(err))
	}
	o.publish(ctx, l, events.Event{
		Type:      events.TypeSyncFailed,
		UserID:    userID,
		Platform:  p.String(),
		Error:     runErr.Error(),
		Timestamp: at,
	})
	o.Metrics.RecordSyncRun(p.String(), metrics.OutcomeFailure, at.Sub(started))
}

func (o *Orchestrator) publish(ctx context.Context, l *zap.Logger, evt events.Event) {
	if err := o.Events.Publish(ctx, evt); err != nil {
		l.Warn("Failed to publish sync event", zap.String("type", evt.Type), zap.Error(err))
	}
}

// SyncAll syncs every active connection of the user in platform order.
// A failing platform is reported in its PlatformResult and does not stop the batch.
func (o *Orchestrator) SyncAll(ctx context.Context, userID string, progress ProgressFunc) ([]PlatformResult, error) {
	conns, err := o.Library.Connections(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	out := make([]PlatformResult, 0, len(conns))
	for _, c := range conns {
		pr := PlatformResult{Platform: c.Platform}
		p, err := platform.Parse(c.Platform)
		if err == nil {
			pr.Result, err = o.Sync(ctx, userID, p, progress)
		}
		if err != nil {
			pr.Error = err.Error()
		}
		out = append(out, pr)
	}
	return out, nil
}

// run is the state of one sync. Candidate maps live only as long as the run.
type run struct {
	o       *Orchestrator
	logger  *zap.Logger
	norm    *reconcile.Normalizer
	adapter platform.Adapter
	creds   platform.Credentials
	tracker *tracker
	result  *Result

	local    []reconcile.Candidate
	external map[string][]reconcile.Candidate
	searched map[string]bool
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	name := r.adapter.Platform().String()
	if caps, ok := r.adapter.Platform().Capabilities(); ok {
		name = caps.Name
	}

	r.tracker.report(StateFetching, 0, "Fetching library from "+name)
	records, err := r.adapter.FetchLibrary(ctx, r.creds)
	if err != nil {
		return nil, err
	}
	r.result.Total = len(records)
	r.logger.Info("Fetched platform library", zap.String("state", string(StateFetching)), zap.Int("records", len(records)))
	r.tracker.report(StateFetching, fetchDone, fmt.Sprintf("Found %d games", len(records)))

	if err := r.search(ctx, records); err != nil {
		return nil, err
	}
	r.tracker.report(StateSearching, searchDone, "Matching games with catalog")

	var matched []matchedRecord
	for i, rec := range records {
		match, err := r.match(ctx, rec)
		switch {
		case err != nil:
			r.result.Failed++
			r.logger.Warn("Failed to resolve record",
				zap.String("state", string(StateResolving)),
				zap.String("title", rec.Name),
				zap.Error(err),
			)
		case match != nil:
			matched = append(matched, matchedRecord{rec: rec, match: match})
		}
		r.tracker.record(StateResolving, searchDone, resolveDone, i+1, len(records),
			fmt.Sprintf("Matched %d of %d games", i+1, len(records)))
	}

	r.tracker.report(StateMerging, resolveDone, fmt.Sprintf("Saving %d matched games", len(matched)))
	for i, m := range matched {
		if err := r.merge(ctx, m.rec, m.match); err != nil {
			r.result.Failed++
			r.logger.Warn("Failed to sync record",
				zap.String("state", string(StateMerging)),
				zap.String("title", m.rec.Name),
				zap.Error(err),
			)
		}
		r.tracker.record(StateMerging, resolveDone, recordsDone, i+1, len(matched),
			fmt.Sprintf("Saved %d of %d games", i+1, len(matched)))
	}

	r.tracker.report(StateFinalizing, recordsDone, "Saving sync status")
	return r.result, nil
}

// search gathers the run's candidates. A core title is sent to the catalog
// source unless a cached game normalizes to the same string; a cached sequel
// does not cover its base title.
func (r *run) search(ctx context.Context, records []platform.ExternalGameRecord) error {
	norm := r.norm
	cores := make([]string, 0, len(records))
	for _, rec := range records {
		cores = append(cores, norm.CoreTitle(rec.Name))
	}
	cores = catalog.Dedupe(cores)

	local, err := r.o.Lookup.SearchLocal(ctx, cores)
	if err != nil {
		return fmt.Errorf("search cached games: %w", err)
	}
	r.local = local

	cached := make(map[string]struct{}, len(local))
	for _, c := range local {
		cached[norm.Normalize(c.Name)] = struct{}{}
	}

	var remaining []string
	for _, core := range cores {
		key := norm.Normalize(core)
		if _, ok := cached[key]; ok && key != "" {
			continue
		}
		remaining = append(remaining, core)
	}

	r.external = make(map[string][]reconcile.Candidate)
	r.searched = make(map[string]bool, len(remaining))
	for _, t := range remaining {
		r.searched[strings.ToLower(t)] = true
	}
	if len(remaining) == 0 {
		return nil
	}

	entries, err := r.o.Lookup.BatchSearch(ctx, remaining)
	if err != nil {
		return err
	}
	for _, e := range entries {
		key := strings.ToLower(e.Query)
		r.external[key] = append(r.external[key], reconcile.Candidate{CatalogID: e.CatalogID, Name: e.Name})
	}
	r.logger.Info("Catalog search complete",
		zap.String("state", string(StateSearching)),
		zap.Int("cached", len(local)),
		zap.Int("searched", len(remaining)),
		zap.Int("candidates", len(entries)),
	)
	return nil
}

type matchedRecord struct {
	rec   platform.ExternalGameRecord
	match *reconcile.MatchResult
}

// match resolves one record. An unmatched record is listed as not
// recognized and yields a nil match. A panic is converted into an error so
// one bad record cannot end the run.
func (r *run) match(ctx context.Context, rec platform.ExternalGameRecord) (match *reconcile.MatchResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			match, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()

	match, err = r.resolve(ctx, rec)
	if err != nil {
		return nil, err
	}
	if match == nil {
		r.result.Failed++
		r.result.NotRecognized = append(r.result.NotRecognized, Unrecognized{
			RawTitle:        rec.Name,
			NormalizedTitle: r.norm.Normalize(rec.Name),
			Platform:        rec.Platform.String(),
			Metadata:        rec.Metadata,
		})
		r.logger.Debug("Title not recognized", zap.String("title", rec.Name))
		return nil, nil
	}

	r.o.Metrics.RecordMatch(string(match.Method))
	r.result.Methods[string(match.Method)]++
	r.logger.Debug("Title matched",
		zap.String("title", rec.Name),
		zap.String("method", string(match.Method)),
		zap.Int("confidence", match.Confidence),
	)
	return match, nil
}

// merge stores the library entry for a matched record.
func (r *run) merge(ctx context.Context, rec platform.ExternalGameRecord, match *reconcile.MatchResult) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	gameID := match.GameID
	if gameID == "" {
		game, err := r.o.Lookup.FindOrCreate(ctx, match.CatalogID)
		if err != nil {
			return fmt.Errorf("store catalog game %d: %w", match.CatalogID, err)
		}
		gameID = game.ID
	}

	outcome, err := r.o.Library.Merge(ctx, library.MergeInput{
		UserID:          r.creds.UserID,
		GameID:          gameID,
		Platform:        rec.Platform.String(),
		ExternalID:      rec.ExternalID,
		PlaytimeMinutes: rec.PlaytimeMinutes,
		LastPlayedAt:    rec.LastPlayedAt,
	})
	if err != nil {
		return err
	}
	switch outcome {
	case library.Added:
		r.result.Added++
	case library.Updated:
		r.result.Updated++
	default:
		r.result.Unchanged++
	}
	return nil
}

// resolve runs the cascade on the raw title, then once more on the
// simplified title when nothing matched.
func (r *run) resolve(ctx context.Context, rec platform.ExternalGameRecord) (*reconcile.MatchResult, error) {
	core := strings.ToLower(strings.TrimSpace(r.norm.CoreTitle(rec.Name)))
	external := r.external[core]

	resolver := r.o.Resolver
	if !r.searched[core] {
		// cache-covered titles never reached the source, so an empty
		// external list does not mean the catalog has nothing
		noAlias := *resolver
		noAlias.Aliases = nil
		resolver = &noAlias
	}

	platformName := rec.Platform.String()
	match, err := resolver.Resolve(ctx, rec.Name, platformName, r.local, external)
	if err != nil || match != nil {
		return match, err
	}

	simplified := reconcile.SimplifiedTitle(rec.Name)
	if simplified == "" || simplified == strings.TrimSpace(rec.Name) {
		return nil, nil
	}
	return resolver.Resolve(ctx, simplified, platformName, r.local, external)
}
