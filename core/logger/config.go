package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// Service is attached to every entry as the "service" field. Empty omits it.
	Service string `mapstructure:"service" default:"library-sync"`
}
