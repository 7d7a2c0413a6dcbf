package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in context.
// A nil resolver falls back to the package default.
func Middleware(res *Resolver) func(http.Handler) http.Handler {
	if res == nil {
		res = defaultResolver
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetIPToContext(r.Context(), res.FromRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
