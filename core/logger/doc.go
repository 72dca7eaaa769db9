// Package logger builds the zap logger shared by the server and the CLI.
//
// # Configuration
//
//   - Level: debug, info, warn, error. Debug also selects zap's development preset.
//   - Format: json for log shipping, console for terminals.
//   - Service: a constant "service" field on every entry.
//
// # Scoped loggers
//
// WithRayID tags entries with the request's RayID so every log line of one
// HTTP request can be correlated. WithSync tags entries with the user and
// platform of a sync run; the orchestrator uses it for every line it emits.
//
//	l := logger.WithSync(base, userID, "steam")
//	l.Info("Fetched library", zap.Int("records", n))
package logger
