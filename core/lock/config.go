package lock

// Config selects the lock backend.
type Config struct {
	// URL is a redis:// URL. Empty uses process-local locks.
	URL string `mapstructure:"url" default:""`
	// Prefix is prepended to every lock key.
	Prefix string `mapstructure:"prefix" default:"library-sync:lock:"`
}
