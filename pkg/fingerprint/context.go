package fingerprint

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext returns a copy of ctx carrying fp.
func WithContext(ctx context.Context, fp string) context.Context {
	return context.WithValue(ctx, ctxKey{}, fp)
}

// FromContext returns the fingerprint set by Middleware, or "".
func FromContext(ctx context.Context) string {
	if fp, ok := ctx.Value(ctxKey{}).(string); ok {
		return fp
	}
	return ""
}

// LoggerExtractor adds the request fingerprint to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if fp := FromContext(ctx); fp != "" {
			return slog.String("fingerprint", fp), true
		}
		return slog.Attr{}, false
	}
}
