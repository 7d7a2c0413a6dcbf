package fingerprint

import "net/http"

// Middleware stores the request fingerprint in the context so later handlers
// and log extractors see the same value. Mount it after clientip.Middleware.
func Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(WithContext(r.Context(), FromRequest(r)))
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
