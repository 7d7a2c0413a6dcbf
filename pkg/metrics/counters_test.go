package metrics_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/clientdetect/pkg/metrics"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("fresh counters never divide by zero", func(t *testing.T) {
		t.Parallel()

		c := metrics.NewCounters(metrics.WithClock(newClock().Now))
		s := c.Snapshot(0)

		assert.Equal(t, metrics.Snapshot{}, s)
	})

	t.Run("rates", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		c := metrics.NewCounters(metrics.WithClock(clk.Now))
		for range 4 {
			c.IncRequests()
		}
		c.IncHits()
		c.IncMisses()
		c.IncMisses()
		c.IncMisses()
		clk.Advance(2 * time.Second)

		s := c.Snapshot(3)
		assert.Equal(t, uint64(4), s.TotalRequests)
		assert.Equal(t, uint64(1), s.CacheHits)
		assert.Equal(t, uint64(3), s.CacheMisses)
		assert.InDelta(t, 25.0, s.CacheHitRate, 0.001)
		assert.InDelta(t, 2.0, s.UptimeSeconds, 0.001)
		assert.InDelta(t, 2.0, s.RequestsPerSecond, 0.001)
		assert.Equal(t, 3, s.CacheSize)
	})

	t.Run("sub-second uptime uses one second", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		c := metrics.NewCounters(metrics.WithClock(clk.Now))
		c.IncRequests()
		c.IncRequests()
		clk.Advance(100 * time.Millisecond)

		s := c.Snapshot(0)
		assert.InDelta(t, 2.0, s.RequestsPerSecond, 0.001)
	})

	t.Run("hit rate rounds to two decimals", func(t *testing.T) {
		t.Parallel()

		c := metrics.NewCounters(metrics.WithClock(newClock().Now))
		for range 3 {
			c.IncRequests()
		}
		c.IncHits()

		assert.Equal(t, 33.33, c.Snapshot(0).CacheHitRate)
	})
}

func TestCountersConcurrent(t *testing.T) {
	t.Parallel()

	c := metrics.NewCounters()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.IncRequests()
				c.IncHits()
				c.IncMisses()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(5000), c.Requests())
	assert.Equal(t, uint64(5000), c.Hits())
	assert.Equal(t, uint64(5000), c.Misses())
}
