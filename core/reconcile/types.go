package reconcile

import "context"

// Method tags which cascade layer produced a match.
type Method string

const (
	// MethodMapped is an operator-curated title mapping.
	MethodMapped Method = "mapped"
	// MethodExact is a case-insensitive equality on the untransformed title.
	MethodExact Method = "exact"
	// MethodNormalized is an equality after normalization.
	MethodNormalized Method = "normalized"
	// MethodAlias is a hit from the catalog's alternate-name search.
	MethodAlias Method = "alias"
	// MethodFuzzy is the best edit-distance similarity above the threshold.
	MethodFuzzy Method = "fuzzy"
)

// Confidence assigned by each deterministic layer. Fuzzy matches use round(similarity*100).
const (
	ConfidenceMapped     = 100
	ConfidenceExact      = 100
	ConfidenceNormalized = 95
	ConfidenceAlias      = 90
)

// DefaultFuzzyThreshold is the minimum similarity accepted by the fuzzy layer.
const DefaultFuzzyThreshold = 0.75

// Candidate is a canonical game a title can resolve to.
// Cached candidates carry GameID; external ones only CatalogID until they are upserted.
type Candidate struct {
	// GameID is the internal canonical game id, empty for uncached catalog entries.
	GameID string `json:"game_id,omitempty"`

	// CatalogID is the catalog source id.
	CatalogID int64 `json:"catalog_id,omitempty"`

	// Name is the catalog display name.
	Name string `json:"name"`
}

// MatchResult is the outcome of resolving one title.
type MatchResult struct {
	Candidate

	// Confidence is 0..100.
	Confidence int `json:"confidence"`

	// Method is the layer that produced the match.
	Method Method `json:"method"`
}

// MappingLookup finds an operator override for (platform, raw title).
type MappingLookup interface {
	FindMapping(ctx context.Context, platform, rawTitle string) (gameID string, found bool, err error)
}

// AliasSearcher searches the catalog by alternate names. It returns nil when nothing matches.
type AliasSearcher interface {
	AliasSearch(ctx context.Context, title string) (*Candidate, error)
}

// AliasSearchFunc adapts a function to AliasSearcher.
type AliasSearchFunc func(ctx context.Context, title string) (*Candidate, error)

// AliasSearch calls f.
func (f AliasSearchFunc) AliasSearch(ctx context.Context, title string) (*Candidate, error) {
	return f(ctx, title)
}
