// Package storage provides the object storage target for report exports.
//
// It wraps the MinIO Go client behind a narrow Client interface so that
// export uploads can be mocked in unit tests (see core/storage/mocks), and
// works against both AWS S3 and self-hosted MinIO.
//
// # Uploader
//
// Uploader places local export files in one bucket under a configured
// prefix, creating the bucket on first use:
//
//	client, err := storage.NewClient(cfg.Storage)
//	up := storage.NewUploader(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
//	if err := up.EnsureBucket(ctx); err != nil { ... }
//	name, err := up.UploadFile(ctx, "run-1/summary.json", "/tmp/exports/run-1/summary.json")
package storage
