// Package integrity provides infrastructure health checks for the sync service.
//
// Unlike the 'sync' feature which reconciles user libraries, this package
// validates that the storage bucket and the database are in the shape the
// sync pipeline expects.
//
// # Checks Provided
//
//   - Structure: Checks that the catalog, export and report folders exist in the storage bucket.
//   - Catalog: Verifies that the catalog snapshot exists, parses and has usable entries.
//   - Schema: Validates that every table and column of the sync models exists in the database.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog snapshot check.
//   - GET /integrity/schema : Runs schema check (supports ?fix=true).
package integrity
