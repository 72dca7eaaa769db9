package config

import (
	"reflect"
	"strings"
	"time"

	"library-sync/core/database"
	"library-sync/core/events"
	"library-sync/core/lock"
	"library-sync/core/logger"
	"library-sync/core/ratelimit"
	"library-sync/core/server"
	"library-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Catalog holds settings for the canonical catalog source.
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Quota holds the hourly budget for quota-scarce platform APIs.
	Quota ratelimit.QuotaConfig `mapstructure:"quota"`
	// Match holds matching cascade tuning.
	Match MatchConfig `mapstructure:"match"`
	// Sync holds sync run settings.
	Sync SyncConfig `mapstructure:"sync"`
	// Redis holds the distributed lock backend.
	Redis lock.Config `mapstructure:"redis"`
	// Kafka holds the sync event stream.
	Kafka events.Config `mapstructure:"kafka"`
}

// CatalogConfig holds settings for the canonical catalog source.
type CatalogConfig struct {
	// RequestsPerSecond is the catalog source's sustained request rate.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"4"`
	// BatchSize is the maximum number of titles per search call.
	BatchSize int `mapstructure:"batch_size" default:"10"`
	// MaxResultsPerTitle caps the candidates returned for one title.
	MaxResultsPerTitle int `mapstructure:"max_results_per_title" default:"5"`
	// SnapshotObject is the catalog snapshot key in the storage bucket.
	SnapshotObject string `mapstructure:"snapshot_object" default:"catalog/games.json"`
	// CacheTTL is how long a loaded snapshot index is reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"10m"`
}

// MatchConfig holds matching cascade tuning.
type MatchConfig struct {
	// FuzzyThreshold is the minimum similarity accepted by the fuzzy layer.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" default:"0.75"`
	// PlatformTokens overrides the platform name patterns. Empty keeps the defaults.
	PlatformTokens []string `mapstructure:"platform_tokens" default:""`
	// BuildSuffixes overrides the build and region suffixes. Empty keeps the defaults.
	BuildSuffixes []string `mapstructure:"build_suffixes" default:""`
	// EditionSuffixes overrides the edition suffixes. Empty keeps the defaults.
	EditionSuffixes []string `mapstructure:"edition_suffixes" default:""`
}

// SyncConfig holds sync run settings.
type SyncConfig struct {
	// ProgressEvery emits a progress event at least every N records.
	ProgressEvery int `mapstructure:"progress_every" default:"10"`
	// ProgressStep emits a progress event whenever the run advances by this many percent.
	ProgressStep int `mapstructure:"progress_step" default:"5"`
	// LockTTL bounds how long a crashed run can block the next one.
	LockTTL time.Duration `mapstructure:"lock_ttl" default:"30m"`
	// ReportPrefix is where run reports are archived. Empty disables archiving.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
	// ReportRetention is the number of reports kept per user and platform.
	ReportRetention int `mapstructure:"report_retention" default:"20"`
	// ExportPrefix is where uploaded library exports are read from.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports/"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
