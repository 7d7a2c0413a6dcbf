package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/clientdetect/pkg/clientip"
)

// Generate derives the request fingerprint from the resolved client IP,
// the raw User-Agent, the HTTP method and the absolute request URL.
// Equal inputs always produce the same 32-character hex string.
func Generate(ip, userAgent, method, url string) string {
	combined := strings.Join([]string{ip, userAgent, method, url}, "\n")
	hash := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(hash[:16])
}

// FromRequest computes the fingerprint of r. The client IP is taken from the
// request context when clientip.Middleware already resolved it.
func FromRequest(r *http.Request) string {
	ip := clientip.GetIPFromContext(r.Context())
	if ip == "" {
		ip = clientip.GetIP(r)
	}
	return Generate(ip, r.UserAgent(), r.Method, RequestURL(r))
}

// RequestURL reconstructs the absolute URL the client asked for, including
// the query string. Scheme and host honour X-Forwarded-Proto and X-Forwarded-Host.
func RequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := firstToken(r.Header.Get("X-Forwarded-Proto")); proto == "https" || proto == "http" {
		scheme = proto
	}

	host := firstToken(r.Header.Get("X-Forwarded-Host"))
	if host == "" {
		host = r.Host
	}

	return scheme + "://" + host + r.URL.RequestURI()
}

func firstToken(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}
