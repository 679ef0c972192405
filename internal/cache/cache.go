// Package cache provides a process-lifetime lookup cache for word detail
// payloads fetched from the backend. Entries never expire; the only
// invalidation is an explicit Clear on logout or when the active
// vocabulary scene changes.
package cache

// Cache maps a lookup key to a previously fetched value. It is not safe
// for concurrent use on its own; the owning state.App serializes access
// under its mutex.
type Cache[K comparable, V any] struct {
	entries map[K]V
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get returns the cached value for key, and whether it was present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores value under key, replacing any existing entry wholesale.
func (c *Cache[K, V]) Put(key K, value V) {
	c.entries[key] = value
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]V)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// PairKey builds a composite cache key from a source word and a target
// word. Used by the decomposition cache, where a lookup is identified by
// both strings.
func PairKey(word, target string) string {
	return word + "\x1f" + target
}
