// Package redis connects to Redis and exposes a small namespaced key-value
// Storage on top of github.com/redis/go-redis/v9.
//
// Connect retries the initial ping according to Config, so the service can
// start while Redis is still coming up. Storage prefixes every key, lists keys
// with SCAN and clears only its own namespace, which makes it safe to share a
// database with other applications. Storage.Ping plugs into readiness probes.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStorage(client, cfg)
//	_ = store.Set(ctx, "fp", payload, 5*time.Minute)
package redis
