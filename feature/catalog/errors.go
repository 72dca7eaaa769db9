package catalog

import "errors"

var (
	// ErrCatalogUnavailable means no catalog query of a batch succeeded.
	ErrCatalogUnavailable = errors.New("catalog source unavailable")
	// ErrGameNotFound means the catalog id is unknown both locally and upstream.
	ErrGameNotFound = errors.New("game not found in catalog")
)
