// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// The cache is bounded by entry count. Once full, the least recently used
// entry is evicted. With WithTTL every entry also carries a deadline measured
// from its last Put; expired entries are invisible to Get and Keys and are
// dropped lazily on access or eagerly by PurgeExpired.
//
//	c := cache.NewLRUCache[string, Record](1000, cache.WithTTL(5*time.Minute))
//	c.Put(fp, rec)
//	if rec, ok := c.Get(fp); ok {
//		// hit
//	}
//
// SetEvictCallback observes capacity and expiry evictions, which is handy for
// counting them. Explicit Remove and Clear are not reported.
//
// All operations take a single mutex and are O(1) except Keys and
// PurgeExpired, which walk the recency list.
package cache
