// Package cache provides a small generic TTL cache with stampede protection.
//
// Misses go through singleflight, so a burst of sync runs asking for the same
// catalog snapshot or alias result triggers one load.
package cache
