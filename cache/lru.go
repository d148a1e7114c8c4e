// Package cache provides a small generic LRU cache with hit/miss
// statistics, used by the render layer to deduplicate materials and
// reuse built geometry.
package cache

import (
	"container/list"
	"sync/atomic"
)

// DefaultCapacity is the maximum entry count when none is configured.
const DefaultCapacity = 256

// LRU is a least-recently-used cache from comparable keys to values.
//
// The core is single-threaded (all mutation happens on the UI/render
// thread), so LRU does no locking; the atomic statistics exist so a
// diagnostics goroutine can read counters without tearing.
type LRU[K comparable, V any] struct {
	capacity int
	entries  map[K]*list.Element
	order    *list.List // front = most recently used

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU with the given capacity. Capacity <= 0 means
// DefaultCapacity.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if el, ok := c.entries[key]; ok {
		c.hits.Add(1)
		c.order.MoveToFront(el)
		return el.Value.(*lruEntry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// GetOrCreate returns the cached value for key, calling create and
// caching the result on a miss. This is the dedup path: two
// value-equal keys always yield the same cached instance.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Put(key, v)
	return v
}

// Put inserts or replaces a value, evicting the least recently used
// entry if the cache is full.
func (c *LRU[K, V]) Put(key K, value V) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
}

func (c *LRU[K, V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*lruEntry[K, V]).key)
	c.evictions.Add(1)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return c.order.Len() }

// Clear drops every entry. Statistics are kept.
func (c *LRU[K, V]) Clear() {
	c.entries = make(map[K]*list.Element)
	c.order.Init()
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// Stats returns current counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.order.Len(),
	}
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (c *LRU[K, V]) HitRate() float64 {
	h := c.hits.Load()
	m := c.misses.Load()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}
