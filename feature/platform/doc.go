// Package platform defines the boundary to external game stores.
//
// An Adapter returns a user's library as ExternalGameRecords; a Registry
// selects the adapter for a platform so callers never branch on the platform
// name. QuotaGuard wraps adapters whose upstream API has an hourly budget and
// fails fast with a *QuotaExceededError when it is spent.
//
// ExportAdapter is the bundled implementation: it reads library export
// documents uploaded to object storage.
package platform
