// Package reconcile maps a platform-supplied game title to a canonical catalog entry.
//
// Platforms report titles with their own conventions: trademark glyphs, platform
// qualifiers, edition and region suffixes. Matching runs as a cascade that stops
// at the first layer producing a result:
//
//  0. Mapping: an operator-curated (platform, raw title) override. Always wins.
//  1. Exact: case-insensitive equality on the untransformed title.
//  2. Normalized: equality after Normalize on both sides.
//  3. Alias: the catalog's alternate-name search, only when the batch search
//     returned no external candidates at all.
//  4. Fuzzy: the best Levenshtein similarity between normalized strings, accepted
//     at or above the configured threshold. Ties keep the first candidate.
//
// # Usage Example
//
//	resolver := reconcile.NewResolver(mappingStore, catalogLookup)
//	match, err := resolver.Resolve(ctx, "The Witcher 3 Wild Hunt", "steam", local, external)
//	if err != nil {
//	    return err
//	}
//	if match == nil {
//	    // unrecognized, candidate for a manual mapping
//	}
//
// Normalize, Similarity, CoreTitle and SimplifiedTitle are pure functions and
// safe for concurrent use. A Resolver holds no per-call state.
package reconcile
