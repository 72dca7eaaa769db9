// Package database handles database connections and schema checks.
//
// It wraps GORM and selects the dialect from configuration: MySQL (default),
// PostgreSQL through pgx, or pure-Go SQLite for tests and single-node setups.
//
// # Connect
//
// Connect opens the pool, applies pool limits and pings the server within the
// configured timeout. SQLite connections are limited to one so that
// ":memory:" databases are shared by every query.
//
// # Schema
//
// Migrate runs AutoMigrate for the feature models. MissingColumns compares a
// live table against the columns a feature expects, for deployments where the
// schema is managed outside the service.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.Migrate(db, &library.Entry{}, &library.Connection{})
package database
