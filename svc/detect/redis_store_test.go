package detect_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientdetect/pkg/redis"
	"github.com/dmitrymomot/clientdetect/svc/detect"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	cfg := redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
		KeyPrefix:      fmt.Sprintf("clientdetect-store-test-%d:", time.Now().UnixNano()),
	}
	client, err := redis.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := detect.NewRedisStore(redis.NewStorage(client, cfg), time.Minute)
	ctx := context.Background()
	t.Cleanup(func() { _ = store.Clear(context.Background()) })

	require.NoError(t, store.Ping(ctx))

	svc := newService(t, store)

	first, hit, err := svc.Assemble(ctx, newRequest("/r", chromeUA))
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.Assemble(ctx, newRequest("/r", chromeUA))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	keys, err := store.Keys(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	require.NoError(t, svc.ClearCache(ctx))
	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
