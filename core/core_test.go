package core_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientdetect/core"
	"github.com/dmitrymomot/clientdetect/pkg/requestid"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) core.ErrorBody {
	t.Helper()
	var body core.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := core.JSON(http.StatusCreated, map[string]any{"ok": true}).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestJSONIndent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, core.JSONIndent(http.StatusOK, map[string]int{"a": 1}).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", rec.Body.String())
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		title   string
		message string
	}{
		{"unauthorized", core.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized", "API key required"},
		{"forbidden", core.ErrForbidden, http.StatusForbidden, "Forbidden", "Invalid API key"},
		{"not found", core.ErrNotFound, http.StatusNotFound, "Not Found", "Endpoint not found"},
		{"wrapped", errors.Join(errors.New("context"), core.ErrTooManyRequests), http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded"},
		{"internal detail hidden", errors.New("db password is hunter2"), http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
			rec := httptest.NewRecorder()
			require.NoError(t, core.JSONError(tt.err).Render(rec, req))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, core.ErrorBody{Error: tt.title, Message: tt.message, Code: tt.status, RequestID: "req-1"}, body)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		h := core.Handle(nil, func(*http.Request) (core.Response, error) {
			return core.JSON(http.StatusOK, map[string]string{"status": "healthy"}), nil
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("http error is rendered without logging", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		h := core.Handle(newLogger(&logs), func(*http.Request) (core.Response, error) {
			return nil, core.ErrForbidden
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, logs.String())
	})

	t.Run("unexpected error is logged and hidden", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		h := core.Handle(newLogger(&logs), func(*http.Request) (core.Response, error) {
			return nil, errors.New("boom")
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/api/detect", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
		assert.Contains(t, logs.String(), "boom")
		assert.Contains(t, logs.String(), "/api/detect")
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		h := core.Handle(newLogger(&logs), func(*http.Request) (core.Response, error) {
			return nil, nil
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	panics := 0
	h := core.Recoverer(newLogger(&logs), func() { panics++ })(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/detect", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, panics)
	assert.NotContains(t, rec.Body.String(), "kaboom")
	assert.True(t, strings.Contains(logs.String(), "kaboom"))
	assert.Equal(t, "Internal Server Error", decodeError(t, rec).Error)
}

func TestRecovererAbortHandler(t *testing.T) {
	t.Parallel()

	h := core.Recoverer(nil, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
