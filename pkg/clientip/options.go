package clientip

import "net/http"

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders replaces the proxy header precedence list.
// Header names are canonicalized; an empty list disables header inspection.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		list := make([]string, 0, len(headers))
		for _, h := range headers {
			if h != "" {
				list = append(list, http.CanonicalHeaderKey(h))
			}
		}
		r.headers = list
	}
}

// WithPrivatePolicy sets how private-range header values are treated.
func WithPrivatePolicy(p PrivatePolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// WithTrustPrivate is a boolean shortcut for WithPrivatePolicy, convenient for env-driven config.
func WithTrustPrivate(trust bool) Option {
	if trust {
		return WithPrivatePolicy(AcceptPrivate)
	}
	return WithPrivatePolicy(RejectPrivate)
}
