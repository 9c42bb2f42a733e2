package tags

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 256

// Cache memoizes lookups for the lifetime of the process. Implementations
// must be safe for concurrent use.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Add(key string, value V)
	Len() int
}

type lruCache[V any] struct {
	entries *lru.Cache[string, V]
}

// NewLRUCache creates a bounded cache that evicts the least recently used
// entry once size is reached. A non-positive size falls back to DefaultCacheSize.
func NewLRUCache[V any](size int) (Cache[V], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &lruCache[V]{entries: entries}, nil
}

func (c *lruCache[V]) Get(key string) (V, bool) {
	return c.entries.Get(key)
}

func (c *lruCache[V]) Add(key string, value V) {
	c.entries.Add(key, value)
}

func (c *lruCache[V]) Len() int {
	return c.entries.Len()
}
