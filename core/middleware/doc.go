// Package middleware groups the Fiber middleware of the sync service.
//
// # Components
//
//   - rayid: tags each request with a RayID (X-Request-ID header and ray_id local).
//   - auth: checks X-API-Key and exposes the caller's X-User-ID to handlers.
//     RequireUser rejects user-scoped routes that lack it.
//   - ratelimit: a per-user token bucket placed in front of the sync trigger
//     routes only, so reads stay unthrottled.
//
// rayid and auth are registered globally in cmd/start.go; ratelimit is handed
// to the sync feature, which attaches it per route.
package middleware
