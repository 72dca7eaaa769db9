package storage

import "time"

// Config holds configuration for the object store.
type Config struct {
	// Endpoint is host:port, optionally with an http:// or https:// scheme.
	// An https scheme forces TLS regardless of UseSSL.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS for scheme-less endpoints.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds catalog snapshots, library exports and sync reports.
	Bucket string `mapstructure:"bucket" default:"library-sync"`
	// Region is passed to bucket creation and request signing.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns TimeoutSeconds as a duration, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
