// Package cache provides a thread-safe LRU cache for compiled show/hide
// expressions.
//
// Show/hide rules tend to be a small fixed set of strings evaluated against
// many different contexts, so caching the compiled form avoids re-lexing and
// re-parsing the same rule on every element. The evaluator uses this cache
// when caching is enabled.
//
// # Example
//
//	c := cache.New(256)
//	expr, err := c.GetOrCompile("element.tag === 'button'", parser.Parse)
package cache

import (
	"container/list"
	"sync"

	"github.com/dazl-dev/tokey/pkg/types"
)

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	key  string
	expr *types.Expression
}

// Cache is a thread-safe LRU cache for compiled expressions. Once the
// capacity is reached, the least recently accessed entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// New creates a new LRU cache with the given capacity.
// If capacity is <= 0, a default of 256 is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a compiled expression from the cache.
// Returns (expr, true) if found and promotes the entry to most recently
// used; returns (nil, false) otherwise.
func (c *Cache) Get(key string) (*types.Expression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry).expr, true
}

// Set inserts or replaces an expression in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache) Set(key string, expr *types.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).expr = expr
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry{key: key, expr: expr})
	c.items[key] = el
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// GetOrCompile retrieves the expression for key from the cache, or calls
// compile to create it, caches the result, and returns it. Compilation
// failures are returned and never cached.
func (c *Cache) GetOrCompile(key string, compile func(string) (*types.Expression, error)) (*types.Expression, error) {
	if expr, ok := c.Get(key); ok {
		return expr, nil
	}

	expr, err := compile(key)
	if err != nil {
		return nil, err
	}
	c.Set(key, expr)
	return expr, nil
}

// evictLocked removes the least recently used entry. Caller holds mu.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
