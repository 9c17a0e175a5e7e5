// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that publishing
// clone outputs can be unit tested with the mock in core/storage/mocks. Both
// AWS S3 and self-hosted MinIO instances are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket creates the target bucket on demand.
//   - PutObject: uploads one output file.
//   - GetObject: reads a previously published manifest.
//   - ListObjects / RemoveObjects: prunes objects a new publish no longer contains.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
