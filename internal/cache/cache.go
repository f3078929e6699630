// Package cache provides a small bounded LRU byte-cache used to memoize the
// penalty kernel (internal/vrp.predict) and, optionally, completed solution
// encodings keyed by instance hash.
package cache

import (
	"context"
	"errors"
	"time"
)

// Standard errors returned by cache operations.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrCacheClosed = errors.New("cache is closed")
)

// Cache is the common interface implemented by MemoryCache. internal/vrp and
// cmd/vrpsolve only ever need the subset below.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Len() int
	Stats() Stats
}

// Stats summarizes cache performance.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// Options configures a MemoryCache.
type Options struct {
	MaxEntries int
	DefaultTTL time.Duration
}

// DefaultOptions returns options matching the penalty kernel's memo cap
// (spec.md §4.B: "~128 entries"; the Python reference uses 126 exactly).
func DefaultOptions() *Options {
	return &Options{MaxEntries: 126, DefaultTTL: 0}
}

// New creates a MemoryCache from opts (nil uses DefaultOptions).
func New(opts *Options) Cache {
	if opts == nil {
		opts = DefaultOptions()
	}
	return NewMemoryCache(opts)
}
