package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no usable client address could be recovered.
const Unknown = "unknown"

// Proxy headers consulted by the default resolver, in precedence order.
const (
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXClientIP      = "X-Client-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderTrueClientIP   = "True-Client-IP"
)

// DefaultHeaders is the proxy header precedence used when no WithHeaders option is given.
var DefaultHeaders = []string{
	HeaderXForwardedFor,
	HeaderXRealIP,
	HeaderXClientIP,
	HeaderCFConnectingIP,
	HeaderTrueClientIP,
}

// PrivatePolicy decides what happens to private-range addresses found in proxy headers.
type PrivatePolicy int

const (
	// AcceptPrivate treats a private address like any other valid one: the
	// first header that carries it wins.
	AcceptPrivate PrivatePolicy = iota
	// RejectPrivate skips private addresses entirely.
	RejectPrivate
)

// Resolver recovers the originating client address from proxy headers and
// the transport peer address. It is immutable and safe for concurrent use.
type Resolver struct {
	headers []string
	policy  PrivatePolicy
}

// New creates a Resolver. Without options it uses DefaultHeaders and AcceptPrivate.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		headers: DefaultHeaders,
		policy:  AcceptPrivate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = New()

// GetIP returns the client's IP address using the default resolver.
func GetIP(r *http.Request) string {
	return defaultResolver.FromRequest(r)
}

// FromRequest resolves the client address of an HTTP request.
func (res *Resolver) FromRequest(r *http.Request) string {
	if r == nil {
		return Unknown
	}
	return res.Resolve(r.Header, r.RemoteAddr)
}

// Resolve returns the best-guess client address for the given headers and peer address.
//
// Headers are checked in order and the first acceptable address wins: a public
// one, or a private one under AcceptPrivate. Only the left-most X-Forwarded-For
// entry is considered: that is the conventional client position, but
// deployments that append the real client last will get the wrong answer.
// Malformed and loopback values are skipped. The result is the header token
// exactly as sent, trimmed. The peer address is the final fallback; if it is
// empty, unparsable or loopback the result is Unknown.
func (res *Resolver) Resolve(h http.Header, peerAddr string) string {
	for _, name := range res.headers {
		candidate, v := res.inspect(name, h.Get(name))
		if v == verdictPublic || v == verdictPrivate {
			return candidate
		}
	}
	return peerIP(peerAddr)
}

type verdict string

const (
	verdictAbsent   verdict = "absent"
	verdictInvalid  verdict = "invalid"
	verdictLoopback verdict = "loopback"
	verdictPrivate  verdict = "private"
	verdictRejected verdict = "private_rejected"
	verdictPublic   verdict = "public"
)

// inspect returns the trimmed header token and its verdict. net.IP is only
// used for classification; the token itself is never rewritten.
func (res *Resolver) inspect(header, value string) (string, verdict) {
	candidate := headerCandidate(header, value)
	if candidate == "" {
		return "", verdictAbsent
	}

	ip := parseIP(candidate)
	switch {
	case ip == nil:
		return candidate, verdictInvalid
	case ip.IsLoopback() || ip.IsUnspecified():
		return candidate, verdictLoopback
	case isPrivate(ip):
		if res.policy == RejectPrivate {
			return candidate, verdictRejected
		}
		return candidate, verdictPrivate
	default:
		return candidate, verdictPublic
	}
}

// headerCandidate extracts the single value to validate from a header.
func headerCandidate(header, value string) string {
	if strings.EqualFold(header, HeaderXForwardedFor) {
		if i := strings.IndexByte(value, ','); i >= 0 {
			value = value[:i]
		}
	}
	return strings.TrimSpace(value)
}

func peerIP(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return Unknown
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// Not host:port, assume a bare literal
		host = addr
	}

	ip := parseIP(host)
	if ip == nil || ip.IsLoopback() || ip.IsUnspecified() {
		return Unknown
	}
	return strings.TrimSpace(host)
}

// parseIP validates an IP literal; returns nil when it is not one.
func parseIP(s string) net.IP {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return net.ParseIP(s)
}

// isPrivate reports RFC 1918 / RFC 4193 ranges and link-local unicast.
func isPrivate(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
