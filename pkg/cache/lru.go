package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// expired reports whether the entry has a deadline that is not after now.
func (e *lruEntry[K, V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// LRUCache is a thread-safe LRU cache with optional per-entry expiry.
// When the cache reaches its capacity, the least recently used item is evicted.
type LRUCache[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[K]*list.Element
	eviction *list.List
	mu       sync.Mutex
	onEvict  func(key K, value V)
}

// Option configures an LRUCache.
type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL sets the lifetime of every entry. Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewLRUCache creates a new LRU cache with the specified capacity.
// The capacity must be positive, otherwise it panics.
func NewLRUCache[K comparable, V any](capacity int, opts ...Option) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &LRUCache[K, V]{
		capacity: capacity,
		ttl:      o.ttl,
		now:      o.now,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
}

// SetEvictCallback sets a function called when an entry is dropped because
// of capacity or expiry. Explicit Remove and Clear do not trigger it.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get retrieves a live value and marks it as recently used.
// Expired entries are dropped on access.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	entry := elem.Value.(*lruEntry[K, V])
	if entry.expired(c.now()) {
		c.evict(elem)
		return zero, false
	}

	c.eviction.MoveToFront(elem)
	return entry.value, true
}

// Put adds or updates a value and restarts its TTL.
// Returns the previous live value, if any.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var zero V

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		old, wasLive := entry.value, !entry.expired(now)
		entry.value = value
		entry.expiresAt = c.deadline(now)
		if !wasLive {
			return zero, false
		}
		return old, true
	}

	entry := &lruEntry[K, V]{key: key, value: value, expiresAt: c.deadline(now)}
	c.items[key] = c.eviction.PushFront(entry)

	if c.eviction.Len() > c.capacity {
		if oldest := c.eviction.Back(); oldest != nil {
			c.evict(oldest)
		}
	}

	return zero, false
}

// GetOrCreate returns the live value for key, restarting its TTL, or stores
// and returns create() when there is none. The lookup and the insert happen
// under one lock, so concurrent callers for a key share a single value.
// created reports whether create was called.
func (c *LRUCache[K, V]) GetOrCreate(key K, create func() V) (value V, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry[K, V])
		if !entry.expired(now) {
			c.eviction.MoveToFront(elem)
			entry.expiresAt = c.deadline(now)
			return entry.value, false
		}
		c.evict(elem)
	}

	value = create()
	c.items[key] = c.eviction.PushFront(&lruEntry[K, V]{key: key, value: value, expiresAt: c.deadline(now)})
	if c.eviction.Len() > c.capacity {
		if oldest := c.eviction.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
	return value, true
}

// Remove deletes an item. Returns the removed value if it was live.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	c.unlink(elem)
	entry := elem.Value.(*lruEntry[K, V])
	if entry.expired(c.now()) {
		return zero, false
	}
	return entry.value, true
}

// Len returns the number of stored entries, including expired ones that
// have not been purged yet.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Keys returns up to limit live keys, most recently used first.
// A non-positive limit returns every live key.
func (c *LRUCache[K, V]) Keys(limit int) []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := c.eviction.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	keys := make([]K, 0, n)
	for elem := c.eviction.Front(); elem != nil && len(keys) < n; elem = elem.Next() {
		entry := elem.Value.(*lruEntry[K, V])
		if entry.expired(now) {
			continue
		}
		keys = append(keys, entry.key)
	}
	return keys
}

// PurgeExpired drops every expired entry and returns how many were dropped.
func (c *LRUCache[K, V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl <= 0 {
		return 0
	}

	now := c.now()
	purged := 0
	for elem := c.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*lruEntry[K, V]).expired(now) {
			c.evict(elem)
			purged++
		}
		elem = prev
	}
	return purged
}

// Clear removes all items from the cache.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.eviction.Init()
}

// Must be called with lock held.
func (c *LRUCache[K, V]) deadline(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// Must be called with lock held.
func (c *LRUCache[K, V]) evict(elem *list.Element) {
	c.unlink(elem)
	if c.onEvict != nil {
		entry := elem.Value.(*lruEntry[K, V])
		c.onEvict(entry.key, entry.value)
	}
}

// Must be called with lock held.
func (c *LRUCache[K, V]) unlink(elem *list.Element) {
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*lruEntry[K, V]).key)
}
