// Package config provides configuration management for the library sync service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, sync trigger budget)
//   - Database: driver and connection details (mysql, postgres, sqlite)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Catalog, Quota, Match, Sync: engine tuning
//   - Redis, Kafka: optional lock and event backends
//
// Each field's `default` tag is registered with Viper, so every key can be
// overridden with an environment variable such as CATALOG_BATCH_SIZE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
