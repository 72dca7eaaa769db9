// Package syncer drives library syncs.
//
// One run for one (user, platform) moves through fetching, searching,
// resolving, merging and finalizing. Only run-fatal problems (adapter or
// catalog failure, quota denial, a concurrent run) end it early; every
// per-record problem is counted in the Result and the loop moves on.
//
// Once a run holds its lock, the connection's last sync time and error are
// written however it ends. Successful runs archive a report to object
// storage. Each run publishes a sync.completed or sync.failed event.
//
// The HTTP surface lives under /sync (connections, triggers, SSE progress,
// reports) and /library.
package syncer
