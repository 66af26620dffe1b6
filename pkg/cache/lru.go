package cache

import (
	"container/list"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value V
	key   string
}

// LRU is a fixed-size cache that evicts the least recently used entry.
type LRU[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	group    singleflight.Group
	size     int
	mu       sync.Mutex
}

// NewLRU creates a cache holding at most size entries.
func NewLRU[V any](size int) (*LRU[V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &LRU[V]{
		items:    make(map[string]*list.Element, size),
		eviction: list.New(),
		size:     size,
	}, nil
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*entry[V]).value, true
}

// Set stores value under key, evicting the oldest entry when full.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[V]).value = value
		c.eviction.MoveToFront(elem)
		return
	}

	if len(c.items) >= c.size {
		if oldest := c.eviction.Back(); oldest != nil {
			c.eviction.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[V]).key)
		}
	}
	c.items[key] = c.eviction.PushFront(&entry[V]{key: key, value: value})
}

// GetOrSet returns the cached value for key or computes it with fn.
// Concurrent misses for the same key share one call to fn.
func (c *LRU[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		val, err := fn()
		if err != nil {
			return nil, err
		}
		c.Set(key, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.size)
	c.eviction.Init()
}
