package core

import (
	"errors"
	"log/slog"
	"net/http"
)

// HandlerFunc handles a request and returns what to render.
// A non-nil error takes precedence over the response.
type HandlerFunc func(r *http.Request) (Response, error)

// Handle adapts fn to http.HandlerFunc. HTTPErrors are rendered as-is.
// Any other error is logged with its detail and rendered as a generic 500.
func Handle(log *slog.Logger, fn HandlerFunc) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		if err == nil && resp == nil {
			err = errNilResponse
		}
		if err != nil {
			var httpErr HTTPError
			if !errors.As(err, &httpErr) || httpErr.Status() >= http.StatusInternalServerError {
				log.ErrorContext(r.Context(), "request failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
			}
			resp = JSONError(err)
		}

		if err := resp.Render(w, r); err != nil {
			log.ErrorContext(r.Context(), "failed to render response",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
	}
}

var errNilResponse = errors.New("handler returned no response")
