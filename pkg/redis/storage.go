package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a namespaced key-value view over a Redis client.
// Every key is stored under the configured prefix, so Keys and Clear only
// ever touch this application's entries.
type Storage struct {
	db            redis.UniversalClient
	prefix        string
	scanBatchSize int64
}

// NewStorage wraps client. An empty prefix is allowed but makes Clear
// delete every key of the selected database.
func NewStorage(client redis.UniversalClient, cfg Config) *Storage {
	batch := int64(cfg.ScanBatchSize)
	if batch <= 0 {
		batch = 500
	}
	return &Storage{db: client, prefix: cfg.KeyPrefix, scanBatchSize: batch}
}

// Get returns the value for key. Missing keys return (nil, false, nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores val under key. Zero ttl means no expiration.
func (s *Storage) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Set(ctx, s.prefix+key, val, ttl).Err()
}

// Delete removes key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Keys returns up to limit keys without the prefix, using SCAN so Redis is
// never blocked. A non-positive limit returns every key.
func (s *Storage) Keys(ctx context.Context, limit int) ([]string, error) {
	var keys []string
	err := s.scan(ctx, func(batch []string) bool {
		for _, k := range batch {
			keys = append(keys, k[len(s.prefix):])
			if limit > 0 && len(keys) >= limit {
				return false
			}
		}
		return true
	})
	return keys, err
}

// Len counts the keys under the prefix.
func (s *Storage) Len(ctx context.Context) (int, error) {
	n := 0
	err := s.scan(ctx, func(batch []string) bool {
		n += len(batch)
		return true
	})
	return n, err
}

// Clear deletes every key under the prefix and returns how many were removed.
func (s *Storage) Clear(ctx context.Context) (int, error) {
	removed := 0
	var delErr error
	err := s.scan(ctx, func(batch []string) bool {
		if len(batch) == 0 {
			return true
		}
		n, err := s.db.Del(ctx, batch...).Result()
		if err != nil {
			delErr = err
			return false
		}
		removed += int(n)
		return true
	})
	return removed, errors.Join(err, delErr)
}

// Ping reports whether Redis answers. It is used as a readiness check.
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Client returns the underlying client.
func (s *Storage) Client() redis.UniversalClient { return s.db }

func (s *Storage) scan(ctx context.Context, fn func(batch []string) bool) error {
	var cursor uint64
	for {
		batch, next, err := s.db.Scan(ctx, cursor, s.prefix+"*", s.scanBatchSize).Result()
		if err != nil {
			return err
		}
		if !fn(batch) {
			return nil
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
