package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"library-sync/core/cache"
	"library-sync/core/reconcile"
	"library-sync/core/storage"
)

// minSearchSimilarity admits near-miss spellings into the candidate list.
// The resolver applies the real acceptance threshold.
const minSearchSimilarity = 0.6

type indexedEntry struct {
	entry   Entry
	names   []string
	aliases []string
}

type snapshotIndex struct {
	entries []indexedEntry
	byID    map[int64]Entry
}

// SnapshotSource serves catalog searches from a JSON snapshot of the catalog
// kept in object storage: an array of entries with id, name, slug, genres,
// platforms and alternative_names.
type SnapshotSource struct {
	client     storage.Client
	bucket     string
	object     string
	maxResults int
	normalizer *reconcile.Normalizer
	index      *cache.Cache[*snapshotIndex]
}

// NewSnapshotSource creates a SnapshotSource. The parsed snapshot is reused for ttl.
func NewSnapshotSource(client storage.Client, bucket, object string, ttl time.Duration, maxResults int) *SnapshotSource {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &SnapshotSource{
		client:     client,
		bucket:     bucket,
		object:     object,
		maxResults: maxResults,
		normalizer: reconcile.NewNormalizer(nil, nil, nil),
		index:      cache.New[*snapshotIndex](ttl),
	}
}

func (s *SnapshotSource) load(ctx context.Context) (*snapshotIndex, error) {
	return s.index.GetOrLoad(ctx, s.object, func(ctx context.Context) (*snapshotIndex, error) {
		var entries []Entry
		if err := storage.GetJSON(ctx, s.client, s.bucket, s.object, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		idx := &snapshotIndex{
			entries: make([]indexedEntry, 0, len(entries)),
			byID:    make(map[int64]Entry, len(entries)),
		}
		for _, e := range entries {
			ie := indexedEntry{entry: e, names: []string{s.normalizer.Normalize(e.Name)}}
			for _, alt := range e.AlternativeNames {
				ie.aliases = append(ie.aliases, s.normalizer.Normalize(alt))
			}
			idx.entries = append(idx.entries, ie)
			idx.byID[e.CatalogID] = e
		}
		return idx, nil
	})
}

// Search implements Source.
func (s *SnapshotSource) Search(ctx context.Context, titles []string) ([]Entry, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, title := range titles {
		out = append(out, s.search(idx, title, false)...)
	}
	return out, nil
}

// SearchWithAliases implements Source.
func (s *SnapshotSource) SearchWithAliases(ctx context.Context, title string) ([]Entry, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.search(idx, title, true), nil
}

// Get implements Source.
func (s *SnapshotSource) Get(ctx context.Context, catalogID int64) (*Entry, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := idx.byID[catalogID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return &e, nil
}

type scored struct {
	entry Entry
	score float64
}

func (s *SnapshotSource) search(idx *snapshotIndex, title string, withAliases bool) []Entry {
	q := s.normalizer.Normalize(title)
	if q == "" {
		return nil
	}

	var hits []scored
	for _, ie := range idx.entries {
		names := ie.names
		if withAliases {
			names = append(append([]string{}, ie.names...), ie.aliases...)
		}
		best := 0.0
		for _, n := range names {
			if sc := searchScore(q, n); sc > best {
				best = sc
			}
		}
		if best > 0 {
			e := ie.entry
			e.Query = title
			e.AlternativeNames = nil
			hits = append(hits, scored{entry: e, score: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].entry.CatalogID < hits[j].entry.CatalogID
	})
	if len(hits) > s.maxResults {
		hits = hits[:s.maxResults]
	}

	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// searchScore ranks exact matches first, then containment, then similarity.
// Zero means no match.
func searchScore(q, name string) float64 {
	if name == "" {
		return 0
	}
	sim := reconcile.Similarity(q, name)
	switch {
	case q == name:
		return 3
	case strings.Contains(name, q) || (len(name) >= 4 && strings.Contains(q, name)):
		return 2 + sim
	case sim >= minSearchSimilarity:
		return sim
	}
	return 0
}
