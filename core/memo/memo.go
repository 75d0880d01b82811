package memo

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes values by key.
type Cache[K comparable, V any] interface {
	// GetOrLoad returns the cached value for key, calling load on a miss.
	// hit reports whether the value came from the cache.
	GetOrLoad(key K, load func() (V, error)) (value V, hit bool, err error)
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Memory is an append-only cache: entries are never evicted or expired.
// Failed loads are not stored. Concurrent misses on one key share a
// single load, and its result or error is handed to every waiter, so load
// should not depend on any one caller's cancellation.
type Memory[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	sf      singleflight.Group
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewMemory creates an empty in-memory cache.
func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{entries: make(map[K]V)}
}

// GetOrLoad implements Cache.
func (m *Memory[K, V]) GetOrLoad(key K, load func() (V, error)) (V, bool, error) {
	// Fast path
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		return v, true, nil
	}

	// %#v quotes strings, so distinct keys never share a flight
	flight := fmt.Sprintf("%#v", key)
	res, err, _ := m.sf.Do(flight, func() (interface{}, error) {
		m.mu.RLock()
		v, ok := m.entries[key]
		m.mu.RUnlock()
		if ok {
			return v, nil
		}

		m.misses.Add(1)
		v, err := load()
		if err != nil {
			return v, err
		}

		m.mu.Lock()
		m.entries[key] = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Stats returns hit and miss counters along with the entry count.
func (m *Memory[K, V]) Stats() Stats {
	m.mu.RLock()
	n := len(m.entries)
	m.mu.RUnlock()
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load(), Entries: n}
}

// Reset drops every entry. The lookup table never changes while the
// process runs, so only tests and a reloaded source call this.
func (m *Memory[K, V]) Reset() {
	m.mu.Lock()
	m.entries = make(map[K]V)
	m.mu.Unlock()
}

// Noop never stores anything; every call loads.
type Noop[K comparable, V any] struct{}

// GetOrLoad implements Cache.
func (Noop[K, V]) GetOrLoad(_ K, load func() (V, error)) (V, bool, error) {
	v, err := load()
	return v, false, err
}
