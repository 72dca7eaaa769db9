package library

import "errors"

var (
	// ErrNotConnected is returned when the user has no connection for the platform.
	ErrNotConnected = errors.New("platform not connected")
	// ErrConnectionInactive is returned when the connection exists but is disabled.
	ErrConnectionInactive = errors.New("platform connection inactive")
)
