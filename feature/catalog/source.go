package catalog

import "context"

// Source is the external canonical catalog. Implementations do not rate
// limit; Lookup does.
type Source interface {
	// Search returns candidates for each title, tagged with the title in Entry.Query.
	Search(ctx context.Context, titles []string) ([]Entry, error)
	// SearchWithAliases searches one title against names and alternative names.
	SearchWithAliases(ctx context.Context, title string) ([]Entry, error)
	// Get returns one entry by catalog id, or ErrGameNotFound.
	Get(ctx context.Context, catalogID int64) (*Entry, error)
}
