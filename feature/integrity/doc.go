// Package integrity provides health checks for the lookup database.
//
// # Checks Provided
//
//   - Schema: Verifies the lookup table carries every column of the names model.
//   - Source: Verifies the cached database file against its known hash.
//   - Storage: Checks that the bucket exists and holds the source object.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/source : Runs the source check.
//   - GET /integrity/storage : Runs the storage check.
package integrity
