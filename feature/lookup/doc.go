// Package lookup runs parameterized, memoized lookups against the
// read-only names table.
//
// Table and column names come from a Schema allow-list and are the only
// text interpolated into statements; identifiers are always bound. Results
// are cached per call signature for the lifetime of the process.
//
// # HTTP Endpoints
//
//   - GET /lookup : Lookup driven by query parameters (q, in, out, op).
//   - POST /lookup : Lookup driven by a JSON body.
package lookup
