// Package source retrieves the lookup database and keeps a verified local
// copy of it.
//
// The database is published as a single sqlite file together with a known
// hash. A Fetcher downloads it once, either from a storage bucket or from a
// URL, checks the digest while writing, and moves the file into the cache
// directory only when the digest matches. Later runs reuse the cached file
// as long as it still verifies.
//
// # Usage
//
//	f, err := source.NewFetcher(cfg.Source, storeClient, cfg.Storage.Bucket, logg)
//	path, err := f.Ensure(ctx)
package source
