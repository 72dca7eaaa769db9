// Package library owns a user's library entries and platform connections.
//
// Entries are keyed by (user, game, platform). Merge is the only writer used
// by sync: it runs in a transaction, locks the row on dialects that support
// it, and never lowers playtime or moves the last-played time backwards.
// Connections carry the audit trail of sync health (last sync time and error).
package library
