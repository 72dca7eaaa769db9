// Package lock provides expiring, non-blocking mutual exclusion keyed by string.
//
// Sync runs take a lock on "user:platform" before fetching so two runs for the
// same pair never race on the same library rows. MemoryLocker covers a single
// process; RedisLocker (SET NX PX plus a compare-and-delete script) covers a
// fleet.
package lock
