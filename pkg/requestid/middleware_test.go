package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientdetect/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, header string) (seen string, rec *httptest.ResponseRecorder) {
	t.Helper()

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid v7", func(t *testing.T) {
		t.Parallel()
		seen, rec := serve(t, requestid.Middleware, "")

		id, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.Equal(t, seen, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid client id", func(t *testing.T) {
		t.Parallel()
		seen, rec := serve(t, requestid.Middleware, "trace-abc_123")
		assert.Equal(t, "trace-abc_123", seen)
		assert.Equal(t, "trace-abc_123", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid client id", func(t *testing.T) {
		t.Parallel()
		seen, _ := serve(t, requestid.Middleware, "<script>")
		assert.NotEqual(t, "<script>", seen)
		assert.NotEmpty(t, seen)
	})

	t.Run("replaces oversized client id", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", 129)
		seen, _ := serve(t, requestid.Middleware, long)
		assert.NotEqual(t, long, seen)
	})

	t.Run("custom generator without trust", func(t *testing.T) {
		t.Parallel()
		mw := requestid.New(
			requestid.WithGenerator(func() string { return "fixed" }),
			requestid.WithTrustInput(false),
		)
		seen, _ := serve(t, mw, "client-id")
		assert.Equal(t, "fixed", seen)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))

	ctx := requestid.WithContext(context.Background(), "abc")
	assert.Equal(t, "abc", requestid.FromContext(ctx))

	attr, ok := requestid.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	_, ok = requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, requestid.IsValid("a1-b2_c3.d4:e5"))
	assert.False(t, requestid.IsValid(""))
	assert.False(t, requestid.IsValid("has space"))
}
