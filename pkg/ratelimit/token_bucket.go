package ratelimit

import (
	"context"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/clientdetect/pkg/cache"
)

// Config describes a token bucket: Requests per Window, with a burst of
// Requests. MaxKeys bounds the number of tracked keys.
type Config struct {
	Requests int
	Window   time.Duration
	MaxKeys  int
}

const defaultMaxKeys = 10_000

// TokenBucket is an in-memory Limiter keeping one golang.org/x/time/rate
// limiter per key. Idle keys are forgotten after two windows or when MaxKeys
// is exceeded, which only ever makes a client's bucket full again.
type TokenBucket struct {
	limit   rate.Limit
	burst   int
	buckets *cache.LRUCache[string, *rate.Limiter]
	now     func() time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TokenBucketOption {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// NewTokenBucket validates cfg and creates the limiter.
func NewTokenBucket(cfg Config, opts ...TokenBucketOption) (*TokenBucket, error) {
	if cfg.Requests <= 0 {
		return nil, ErrInvalidLimit
	}
	if cfg.Window <= 0 {
		return nil, ErrInvalidWindow
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = defaultMaxKeys
	}

	tb := &TokenBucket{
		limit: rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst: cfg.Requests,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.buckets = cache.NewLRUCache[string, *rate.Limiter](cfg.MaxKeys,
		cache.WithTTL(2*cfg.Window),
		cache.WithClock(tb.now),
	)
	return tb, nil
}

// Allow consumes one token for key.
func (tb *TokenBucket) Allow(_ context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrKeyRequired
	}

	now := tb.now()
	// GetOrCreate also refreshes the idle deadline on every request.
	lim, _ := tb.buckets.GetOrCreate(key, func() *rate.Limiter {
		return rate.NewLimiter(tb.limit, tb.burst)
	})

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	res := Result{
		Allowed:   allowed,
		Limit:     tb.burst,
		Remaining: max(int(math.Floor(tokens)), 0),
		now:       now,
	}

	if allowed {
		res.ResetAt = now.Add(tb.durationFor(float64(tb.burst) - tokens))
	} else {
		res.ResetAt = now.Add(tb.durationFor(1 - tokens))
	}
	return res, nil
}

// Keys returns the number of tracked keys.
func (tb *TokenBucket) Keys() int { return tb.buckets.Len() }

func (tb *TokenBucket) durationFor(tokens float64) time.Duration {
	if tokens <= 0 {
		return 0
	}
	return time.Duration(tokens / float64(tb.limit) * float64(time.Second))
}
