package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a thread-safe least recently used cache.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(key K, value V)
	hits     uint64
	misses   uint64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// NewLRU creates a cache holding at most capacity entries.
// It panics if capacity is not positive.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// OnEvict registers a callback invoked for entries dropped due to capacity
// or Remove. It runs with the cache lock held.
func (c *LRU[K, V]) OnEvict(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.hits++
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Put stores value under key, returning the previous value if any.
func (c *LRU[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(key, value)
}

// Compute atomically reads the current value for key and lets fn decide the
// next one. fn receives the cached value and whether it existed; it returns
// the value to hand back to the caller and whether that value must be stored.
func (c *LRU[K, V]) Compute(key K, fn func(current V, ok bool) (V, bool)) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current V
	elem, ok := c.items[key]
	if ok {
		c.hits++
		c.order.MoveToFront(elem)
		current = elem.Value.(*lruEntry[K, V]).value
	} else {
		c.misses++
	}

	next, store := fn(current, ok)
	if store {
		c.put(key, next)
	}
	return next
}

// Remove deletes key from the cache.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		value := elem.Value.(*lruEntry[K, V]).value
		c.removeElement(elem)
		return value, true
	}

	var zero V
	return zero, false
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of size and hit counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: c.order.Len(), Hits: c.hits, Misses: c.misses}
}

// Must be called with lock held.
func (c *LRU[K, V]) put(key K, value V) (V, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		old := entry.value
		entry.value = value
		return old, true
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	var zero V
	return zero, false
}

// Must be called with lock held.
func (c *LRU[K, V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.items, entry.key)

	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value)
	}
}
