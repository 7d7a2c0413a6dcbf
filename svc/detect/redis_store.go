package detect

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/clientdetect/pkg/redis"
)

// RedisStore shares records between replicas through Redis.
// Records are stored as JSON under the storage prefix.
type RedisStore struct {
	storage *redis.Storage
	ttl     time.Duration
}

// NewRedisStore keeps records for ttl. Zero ttl never expires them.
func NewRedisStore(storage *redis.Storage, ttl time.Duration) *RedisStore {
	return &RedisStore{storage: storage, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Record, bool, error) {
	data, ok, err := s.storage.Get(ctx, key)
	if err != nil || !ok {
		return Record{}, false, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A record we cannot decode is treated as absent and rebuilt.
		return Record{}, false, errors.Join(ErrDecodeRecord, err)
	}
	return rec, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrEncodeRecord, err)
	}
	return s.storage.Set(ctx, key, data, s.ttl)
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	return s.storage.Len(ctx)
}

func (s *RedisStore) Keys(ctx context.Context, limit int) ([]string, error) {
	keys, err := s.storage.Keys(ctx, limit)
	if keys == nil {
		keys = []string{}
	}
	return keys, err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.storage.Clear(ctx)
	return err
}

// Ping reports whether Redis is reachable. Used by the readiness probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
