package apikey

import (
	"errors"
	"net/http"
)

// ErrorHandlerFunc renders an authentication failure.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// SkipFunc reports whether a request bypasses key validation.
type SkipFunc func(r *http.Request) bool

// MiddlewareConfig configures Middleware.
type MiddlewareConfig struct {
	Registry     *Registry
	ErrorHandler ErrorHandlerFunc // defaults to a plain-text 401/403
	Skip         SkipFunc
}

// Middleware rejects requests without a registered key and stores the
// authenticated Key in the request context.
func Middleware(cfg MiddlewareConfig) func(next http.Handler) http.Handler {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			key, err := Authenticate(cfg.Registry, r)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithKey(r.Context(), key)))
		})
	}
}

// StatusCode maps authentication errors to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingKey):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidKey):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, err.Error(), StatusCode(err))
}
