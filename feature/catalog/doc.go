// Package catalog owns the canonical game records and the rate-limited access
// to the external catalog they come from.
//
// # Components
//
//   - Game: the canonical record, created on first reference and keyed by catalog id.
//   - Store: GORM persistence, including a containment search over cached names.
//   - Source: the external catalog contract. SnapshotSource serves it from a JSON
//     snapshot in object storage.
//   - Lookup: dedupes and chunks batch searches behind the shared queueing limiter,
//     caches alias searches, and upserts games with FindOrCreate.
//
// # Usage
//
//	source := catalog.NewSnapshotSource(client, bucket, "catalog/games.json", 10*time.Minute, 5)
//	lookup := catalog.NewLookup(catalog.NewStore(db), source, limiter, metrics.Nop{}, logger, catalog.LookupConfig{BatchSize: 10})
//	entries, err := lookup.BatchSearch(ctx, []string{"Elden Ring", "Hades"})
package catalog
