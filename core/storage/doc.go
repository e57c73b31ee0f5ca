// Package storage wraps the MinIO client used to publish mod files.
//
// The Client interface covers the operations the mods feature needs and is
// mocked in core/storage/mocks. NewClient works against MinIO and any S3
// compatible service.
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
