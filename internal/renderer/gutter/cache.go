package gutter

import (
	"sync"
	"sync/atomic"
)

// Cache memoizes gutter labels by row with least-recently-used eviction.
// Each entry carries the key it was built for, so a row whose label
// inputs changed is rebuilt instead of served stale.
type Cache struct {
	mu        sync.Mutex
	entries   map[int]*cacheEntry
	maxSize   int
	tick      uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	label      string
	key        uint64
	lastAccess uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// NewCache creates a cache holding at most maxSize rows. Zero or less
// means unbounded.
func NewCache(maxSize int) *Cache {
	return &Cache{
		entries: make(map[int]*cacheEntry),
		maxSize: max(maxSize, 0),
	}
}

// Get returns the label cached for row under key, calling build on a
// miss.
func (c *Cache) Get(row int, key uint64, build func() string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[row]; ok && e.key == key {
		e.lastAccess = c.tick
		c.hits.Add(1)
		return e.label
	}
	c.misses.Add(1)

	label := build()
	c.entries[row] = &cacheEntry{label: label, key: key, lastAccess: c.tick}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return label
}

// evict removes the least recently used entries until the cache is at
// 90% of its capacity. Caller holds mu.
func (c *Cache) evict() {
	target := c.maxSize * 9 / 10
	for len(c.entries) > target {
		oldest, oldestTick := 0, ^uint64(0)
		for row, e := range c.entries {
			if e.lastAccess < oldestTick {
				oldest, oldestTick = row, e.lastAccess
			}
		}
		delete(c.entries, oldest)
		c.evictions.Add(1)
	}
}

// InvalidateFrom drops every row at or after row.
func (c *Cache) InvalidateFrom(row int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for r := range c.entries {
		if r >= row {
			delete(c.entries, r)
		}
	}
}

// Clear drops every entry. Statistics are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*cacheEntry)
}

// Len returns the number of cached rows.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
	}
}
