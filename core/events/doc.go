// Package events publishes sync lifecycle events (completed, failed) for
// consumers outside the sync engine, such as an activity feed.
package events
