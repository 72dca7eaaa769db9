package mapping

import (
	"errors"

	"library-sync/feature/catalog"
)

var (
	// ErrMappingNotFound is returned when no mapping exists for (platform, title).
	ErrMappingNotFound = errors.New("title mapping not found")
	// ErrGameNotFound is returned when a mapping targets an unknown game.
	ErrGameNotFound = catalog.ErrGameNotFound
	// ErrInvalidMapping is returned for an empty title or game id.
	ErrInvalidMapping = errors.New("platform, title and game id are required")
)
