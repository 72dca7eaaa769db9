// Package ratelimit provides the two admission policies used in front of
// shared external resources.
//
// QueueLimiter guards the catalog source: calls are spaced at a steady rate
// and queued in arrival order. It only delays.
//
// WindowLimiter guards quota-scarce platform APIs with an hourly budget:
// TryAcquire answers immediately, and on denial Remaining and
// MinutesUntilReset tell the caller what to report to the user.
//
// Both are safe for concurrent use and are meant to be created once and
// shared by every sync run in the process.
package ratelimit
