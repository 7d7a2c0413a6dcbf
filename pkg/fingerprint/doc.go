// Package fingerprint derives a stable cache key for an HTTP request.
//
// A fingerprint is the SHA-256 digest of the client IP, the User-Agent, the
// method and the absolute URL joined by newlines, truncated to 16 bytes and
// hex encoded. Two requests share a fingerprint exactly when all four inputs
// are equal, which makes it suitable as a key for per-request metadata caches.
//
//	fp := fingerprint.Generate("203.0.113.7", ua, http.MethodGet, "http://api.example.com/api/detect")
//
// FromRequest extracts the inputs from an *http.Request, and Middleware stores
// the result in the request context for downstream handlers:
//
//	r.Use(clientip.Middleware(nil), fingerprint.Middleware)
//	...
//	fp := fingerprint.FromContext(r.Context())
package fingerprint
