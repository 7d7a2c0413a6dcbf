package apikey

import (
	"context"
	"log/slog"
)

type keyContextKey struct{}

// WithKey stores the authenticated key in ctx.
func WithKey(ctx context.Context, key Key) context.Context {
	return context.WithValue(ctx, keyContextKey{}, key)
}

// FromContext returns the key stored by Middleware.
func FromContext(ctx context.Context) (Key, bool) {
	key, ok := ctx.Value(keyContextKey{}).(Key)
	return key, ok
}

// NameFromContext returns the key name, or an empty string for
// unauthenticated requests.
func NameFromContext(ctx context.Context) string {
	key, _ := FromContext(ctx)
	return key.Name
}

// LoggerExtractor adds the authenticated key name (never the secret) to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if name := NameFromContext(ctx); name != "" {
			return slog.String("api_key", name), true
		}
		return slog.Attr{}, false
	}
}
