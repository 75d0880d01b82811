// Package export dumps lookup tables as CSV, to a file, a writer or
// object storage.
package export
