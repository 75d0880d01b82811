// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client, which works against both AWS S3 and
// self-hosted MinIO. The lookup database can be distributed through a bucket
// instead of a public URL, and exported tables can be pushed back to it.
//
// # Client Interface
//
// The Client interface keeps the surface small so that it can be mocked in
// unit tests (see core/storage/mocks).
//
//   - BucketExists: Verifies access to the target bucket.
//   - StatObject: Reads object metadata (size, ETag).
//   - GetObject: Retrieves content as a stream.
//   - PutObject: Uploads content.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	rc, err := client.GetObject(ctx, "babel", "names.db", minio.GetObjectOptions{})
package storage
