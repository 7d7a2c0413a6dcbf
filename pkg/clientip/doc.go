// Package clientip recovers the originating client address of an HTTP
// request that may have passed through one or more reverse proxies.
//
// A Resolver inspects a fixed, ordered list of proxy headers:
//
//  1. X-Forwarded-For   – only the left-most entry is used
//  2. X-Real-IP         – set by reverse proxies such as Nginx
//  3. X-Client-IP
//  4. CF-Connecting-IP  – Cloudflare
//  5. True-Client-IP    – Akamai, Cloudflare Enterprise
//  6. RemoteAddr        – TCP peer address as a fallback
//
// Malformed literals and loopback addresses are skipped and the first usable
// header wins. Private-range addresses are governed by a PrivatePolicy: with
// AcceptPrivate (the default) they count as usable, with RejectPrivate they are
// ignored. The winning token is returned exactly as sent, only trimmed, so
// IPv6 case and IPv4-mapped forms survive. When nothing usable is found and the
// peer address is empty or loopback, the sentinel Unknown is returned.
//
// Taking the left-most X-Forwarded-For entry is a policy choice. Some
// deployments append the real client last; use WithHeaders to adjust the
// precedence for such environments.
//
// # Usage
//
//	res := clientip.New(clientip.WithPrivatePolicy(clientip.RejectPrivate))
//	ip := res.FromRequest(r)
//
//	// As middleware
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware(res))
//
// Explain returns a per-header breakdown of a resolution for debugging.
//
// # Error Handling
//
// Resolution never fails. Invalid input degrades to the next candidate and
// ultimately to Unknown.
package clientip
