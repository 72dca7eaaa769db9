package reconcile

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Resolver runs the matching cascade: mapping, exact, normalized, alias, fuzzy.
// The first layer that yields a match wins.
type Resolver struct {
	// Normalizer is used by the normalized and fuzzy layers.
	Normalizer *Normalizer

	// Mappings is consulted before any other layer. Nil disables the layer.
	Mappings MappingLookup

	// Aliases is consulted only when no external candidates were supplied. Nil disables the layer.
	Aliases AliasSearcher

	// FuzzyThreshold is the minimum similarity accepted by the fuzzy layer.
	FuzzyThreshold float64
}

// NewResolver creates a Resolver with the default normalizer and threshold.
func NewResolver(mappings MappingLookup, aliases AliasSearcher) *Resolver {
	return &Resolver{
		Normalizer:     defaultNormalizer,
		Mappings:       mappings,
		Aliases:        aliases,
		FuzzyThreshold: DefaultFuzzyThreshold,
	}
}

// Resolve matches a raw platform title against local (cached) and external
// (catalog) candidates. It returns nil without error when no layer matches.
// Errors come only from the mapping and alias lookups.
func (r *Resolver) Resolve(ctx context.Context, rawTitle, platform string, local, external []Candidate) (*MatchResult, error) {
	if strings.TrimSpace(rawTitle) == "" {
		return nil, nil
	}

	if r.Mappings != nil {
		gameID, found, err := r.Mappings.FindMapping(ctx, platform, rawTitle)
		if err != nil {
			return nil, fmt.Errorf("mapping lookup: %w", err)
		}
		if found {
			return &MatchResult{
				Candidate:  Candidate{GameID: gameID},
				Confidence: ConfidenceMapped,
				Method:     MethodMapped,
			}, nil
		}
	}

	candidates := make([]Candidate, 0, len(local)+len(external))
	candidates = append(candidates, local...)
	candidates = append(candidates, external...)

	title := strings.TrimSpace(rawTitle)
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c.Name), title) {
			return &MatchResult{Candidate: c, Confidence: ConfidenceExact, Method: MethodExact}, nil
		}
	}

	n := r.normalizer()
	normalized := n.Normalize(rawTitle)
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = n.Normalize(c.Name)
		if names[i] == normalized {
			return &MatchResult{Candidate: c, Confidence: ConfidenceNormalized, Method: MethodNormalized}, nil
		}
	}

	if len(external) == 0 && r.Aliases != nil {
		hit, err := r.Aliases.AliasSearch(ctx, rawTitle)
		if err != nil {
			return nil, fmt.Errorf("alias search: %w", err)
		}
		if hit != nil {
			return &MatchResult{Candidate: *hit, Confidence: ConfidenceAlias, Method: MethodAlias}, nil
		}
	}

	best := -1
	bestScore := 0.0
	for i := range candidates {
		if score := Similarity(normalized, names[i]); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < r.threshold() {
		return nil, nil
	}
	return &MatchResult{
		Candidate:  candidates[best],
		Confidence: int(math.Round(bestScore * 100)),
		Method:     MethodFuzzy,
	}, nil
}

func (r *Resolver) normalizer() *Normalizer {
	if r.Normalizer == nil {
		return defaultNormalizer
	}
	return r.Normalizer
}

func (r *Resolver) threshold() float64 {
	if r.FuzzyThreshold <= 0 {
		return DefaultFuzzyThreshold
	}
	return r.FuzzyThreshold
}
