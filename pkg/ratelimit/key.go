package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/clientip"
)

// maxKeyLength bounds limiter keys; longer composites are hashed.
const maxKeyLength = 64

// KeyFunc extracts the identity a request is limited under.
// An empty key skips limiting for that request.
type KeyFunc func(*http.Request) string

// ByAPIKey limits per authenticated key name. Mount after apikey.Middleware.
func ByAPIKey(r *http.Request) string {
	if name := apikey.NameFromContext(r.Context()); name != "" {
		return "key:" + name
	}
	return ""
}

// ByClientIP limits per resolved client address. Unknown clients share one bucket.
func ByClientIP(r *http.Request) string {
	ip := clientip.GetIPFromContext(r.Context())
	if ip == "" {
		ip = clientip.GetIP(r)
	}
	return "ip:" + ip
}

// FirstOf returns the first non-empty key produced by fns.
func FirstOf(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		for _, fn := range fns {
			if key := fn(r); key != "" {
				return key
			}
		}
		return ""
	}
}

// Composite joins the keys of fns. Keys longer than 64 bytes are replaced by
// a 32 character SHA-256 prefix.
func Composite(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, "|")
		if len(combined) <= maxKeyLength {
			return combined
		}
		hash := sha256.Sum256([]byte(combined))
		return hex.EncodeToString(hash[:16])
	}
}
