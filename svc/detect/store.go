package detect

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/clientdetect/pkg/cache"
)

// Store keeps assembled records keyed by request fingerprint.
type Store interface {
	// Get returns the record stored under key, if any.
	Get(ctx context.Context, key string) (Record, bool, error)

	// Set stores rec under key.
	Set(ctx context.Context, key string, rec Record) error

	// Len reports the number of live entries.
	Len(ctx context.Context) (int, error)

	// Keys returns up to limit keys.
	Keys(ctx context.Context, limit int) ([]string, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// NopStore never stores anything, so every lookup is a miss.
type NopStore struct{}

func (NopStore) Get(context.Context, string) (Record, bool, error) { return Record{}, false, nil }
func (NopStore) Set(context.Context, string, Record) error         { return nil }
func (NopStore) Len(context.Context) (int, error)                  { return 0, nil }
func (NopStore) Keys(context.Context, int) ([]string, error)       { return []string{}, nil }
func (NopStore) Clear(context.Context) error                       { return nil }

// MemoryStore is a bounded in-process Store backed by an LRU with TTL.
type MemoryStore struct {
	lru       *cache.LRUCache[string, Record]
	evictions atomic.Uint64
}

// NewMemoryStore holds at most maxSize records, each for at most ttl.
// A zero ttl keeps records until they are evicted by size or cleared.
func NewMemoryStore(maxSize int, ttl time.Duration, opts ...cache.Option) *MemoryStore {
	if ttl > 0 {
		opts = append(opts, cache.WithTTL(ttl))
	}
	s := &MemoryStore{lru: cache.NewLRUCache[string, Record](maxSize, opts...)}
	s.lru.SetEvictCallback(func(string, Record) { s.evictions.Add(1) })
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (Record, bool, error) {
	rec, ok := s.lru.Get(key)
	return rec, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, rec Record) error {
	s.lru.Put(key, rec)
	return nil
}

func (s *MemoryStore) Len(context.Context) (int, error) {
	s.lru.PurgeExpired()
	return s.lru.Len(), nil
}

func (s *MemoryStore) Keys(_ context.Context, limit int) ([]string, error) {
	keys := s.lru.Keys(limit)
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.lru.Clear()
	return nil
}

// Evictions counts records dropped for capacity or expiry.
func (s *MemoryStore) Evictions() uint64 {
	return s.evictions.Load()
}

// RunJanitor purges expired records every interval until ctx is done.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.lru.PurgeExpired()
		}
	}
}
