// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the per-user budget
// for sync triggers.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start.go to wire the listener and the sync trigger limiter.
package server
