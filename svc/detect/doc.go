// Package detect is the request classification service.
//
// Service.Assemble turns an HTTP request into a Record: the resolved client
// IP, user agent facets, client type and an echo of the interesting request
// headers. Records are memoized per fingerprint (IP, user agent, method and
// URL) in a Store. MemoryStore is a bounded LRU with TTL, RedisStore shares
// records between replicas and NopStore disables caching. Every assembly
// counts exactly one cache hit or miss. Request totals are counted by the
// HTTP handlers.
//
// NewRouter exposes the service under /api:
//
//	GET|POST /api/detect         full record plus the caller's key name
//	GET|POST /api/detect/simple  browser, OS and client type only
//	GET      /api/stats          counters and a sample of cached keys
//	POST     /api/clear-cache    empties the store
//	GET      /api/health         liveness, no key required
//	GET      /api/ready          dependency checks, no key required
//	GET      /api/debug/ip-info  IP resolution report, optional, no key required
//
// Protected routes accept the key in the X-API-Key header or the api_key
// query parameter. All errors are JSON bodies of the form
// {"error", "message", "code"}.
package detect
