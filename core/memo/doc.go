// Package memo provides the process-wide memoization used by the lookup
// engine.
//
// Memory is append-only: the lookup table is immutable for the life of the
// process, so entries are never evicted or invalidated. Reads take a shared
// lock and concurrent misses for the same key are collapsed with singleflight
// so the database is queried once. Noop is a drop-in replacement that always
// loads, used where caching must be switched off.
package memo
