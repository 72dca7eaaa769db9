// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading files, and listing objects. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket / EnsureBucket: bucket bootstrap.
//   - PutObject / PutJSON: uploads (sync reports, library exports).
//   - GetObject / GetJSON: downloads (catalog snapshot, library exports).
//   - StatObject: cheap change detection for the catalog snapshot.
//   - ListObjects / RemoveObject: report retention.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
