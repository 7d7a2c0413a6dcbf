// Package ratelimit throttles API clients with per-key token buckets.
//
// TokenBucket keeps one golang.org/x/time/rate limiter per key in a bounded
// LRU, refilling Requests tokens every Window. Middleware applies a Limiter to
// the key chosen by a KeyFunc, sets X-RateLimit-* headers on every response
// and answers 429 with Retry-After once the bucket is empty.
//
//	limiter, _ := ratelimit.NewTokenBucket(ratelimit.Config{Requests: 100, Window: time.Minute})
//	r.Use(ratelimit.Middleware(limiter, ratelimit.FirstOf(ratelimit.ByAPIKey, ratelimit.ByClientIP)))
//
// The middleware fails open: a limiter error never blocks traffic.
package ratelimit
