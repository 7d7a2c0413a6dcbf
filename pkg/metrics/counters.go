package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

// Counters tracks request and cache activity for the lifetime of the process.
// All methods are safe for concurrent use.
type Counters struct {
	requests atomic.Uint64
	hits     atomic.Uint64
	misses   atomic.Uint64

	startedAt time.Time
	now       func() time.Time
}

// Option configures Counters.
type Option func(*Counters)

// WithClock replaces time.Now. The start time is taken from the same clock.
func WithClock(now func() time.Time) Option {
	return func(c *Counters) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCounters returns zeroed counters with the start time set to now.
func NewCounters(opts ...Option) *Counters {
	c := &Counters{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.startedAt = c.now()
	return c
}

func (c *Counters) IncRequests() { c.requests.Add(1) }
func (c *Counters) IncHits()     { c.hits.Add(1) }
func (c *Counters) IncMisses()   { c.misses.Add(1) }

func (c *Counters) Requests() uint64 { return c.requests.Load() }
func (c *Counters) Hits() uint64     { return c.hits.Load() }
func (c *Counters) Misses() uint64   { return c.misses.Load() }

// Uptime returns the time elapsed since the counters were created.
func (c *Counters) Uptime() time.Duration {
	return c.now().Sub(c.startedAt)
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TotalRequests     uint64  `json:"total_requests"`
	CacheHits         uint64  `json:"cache_hits"`
	CacheMisses       uint64  `json:"cache_misses"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CacheSize         int     `json:"cache_size"`
}

// Snapshot reads the counters and derives rates.
// The hit rate is a percentage of total requests. Both denominators are
// clamped to at least 1 so the first second of uptime and an idle process
// yield zeros instead of NaN or Inf.
func (c *Counters) Snapshot(cacheSize int) Snapshot {
	total := c.requests.Load()
	hits := c.hits.Load()
	uptime := c.Uptime().Seconds()

	return Snapshot{
		TotalRequests:     total,
		CacheHits:         hits,
		CacheMisses:       c.misses.Load(),
		CacheHitRate:      round2(float64(hits) / math.Max(float64(total), 1) * 100),
		UptimeSeconds:     round2(uptime),
		RequestsPerSecond: float64(total) / math.Max(uptime, 1),
		CacheSize:         cacheSize,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
