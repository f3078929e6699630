package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-memory LRU cache with optional per-entry TTL.
type MemoryCache struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List // front = most recently used
	maxEntries int
	defaultTTL time.Duration

	hits   int64
	misses int64
}

type cacheEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// NewMemoryCache creates an in-memory LRU cache bounded to opts.MaxEntries.
func NewMemoryCache(opts *Options) *MemoryCache {
	if opts == nil {
		opts = DefaultOptions()
	}
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 126
	}
	return &MemoryCache{
		items:      make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
		defaultTTL: opts.DefaultTTL,
	}
}

// Get returns the cached value for key, or ErrKeyNotFound.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, ErrKeyNotFound
	}
	entry := el.Value.(*cacheEntry)
	if entry.isExpired() {
		c.removeElement(el)
		c.misses++
		return nil, ErrKeyNotFound
	}

	c.hits++
	c.order.MoveToFront(el)

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set stores value under key, evicting the least-recently-used entry if the
// cache is at capacity. ttl <= 0 uses the cache's default TTL (0 meaning no
// expiry).
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.value = valueCopy
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return nil
	}

	for c.order.Len() >= c.maxEntries {
		c.evictOldest()
	}

	entry := &cacheEntry{key: key, value: valueCopy, expiresAt: expiresAt}
	el := c.order.PushFront(entry)
	c.items[key] = el
	return nil
}

// Delete removes key from the cache, if present.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
	return nil
}

// Len returns the current number of entries, including expired-but-not-yet-evicted ones.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns current hit/miss counters and entry count.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: c.order.Len(), Hits: c.hits, Misses: c.misses}
}

func (c *MemoryCache) evictOldest() {
	el := c.order.Back()
	if el != nil {
		c.removeElement(el)
	}
}

func (c *MemoryCache) removeElement(el *list.Element) {
	entry := el.Value.(*cacheEntry)
	delete(c.items, entry.key)
	c.order.Remove(el)
}
