package fingerprint_test

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientdetect/pkg/clientip"
	"github.com/dmitrymomot/clientdetect/pkg/fingerprint"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("known digest", func(t *testing.T) {
		t.Parallel()
		fp := fingerprint.Generate("203.0.113.7", "curl/8.4.0", http.MethodGet, "http://example.com/api/detect?x=1")
		assert.Equal(t, "f037456ed1431502ac48115f7272af97", fp)
	})

	t.Run("deterministic hex of fixed length", func(t *testing.T) {
		t.Parallel()
		fp1 := fingerprint.Generate("1.2.3.4", "ua", http.MethodPost, "http://h/p")
		fp2 := fingerprint.Generate("1.2.3.4", "ua", http.MethodPost, "http://h/p")
		assert.Equal(t, fp1, fp2)
		assert.Regexp(t, "^[a-f0-9]{32}$", fp1)
	})

	t.Run("every input changes the result", func(t *testing.T) {
		t.Parallel()
		base := fingerprint.Generate("1.2.3.4", "ua", http.MethodGet, "http://h/p")
		assert.NotEqual(t, base, fingerprint.Generate("1.2.3.5", "ua", http.MethodGet, "http://h/p"))
		assert.NotEqual(t, base, fingerprint.Generate("1.2.3.4", "ub", http.MethodGet, "http://h/p"))
		assert.NotEqual(t, base, fingerprint.Generate("1.2.3.4", "ua", http.MethodPost, "http://h/p"))
		assert.NotEqual(t, base, fingerprint.Generate("1.2.3.4", "ua", http.MethodGet, "http://h/q"))
	})

	t.Run("field boundaries are preserved", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t,
			fingerprint.Generate("1.2.3.4", "ab", "GET", "u"),
			fingerprint.Generate("1.2.3.4a", "b", "GET", "u"),
		)
	})
}

func TestRequestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		headers  map[string]string
		tls      bool
		expected string
	}{
		{
			name:     "plain http",
			target:   "http://api.example.com/api/detect?format=json",
			expected: "http://api.example.com/api/detect?format=json",
		},
		{
			name:     "tls",
			target:   "http://api.example.com/api/detect",
			tls:      true,
			expected: "https://api.example.com/api/detect",
		},
		{
			name:     "forwarded proto and host",
			target:   "http://10.0.0.5:8080/api/detect",
			headers:  map[string]string{"X-Forwarded-Proto": "HTTPS", "X-Forwarded-Host": "edge.example.com, proxy.local"},
			expected: "https://edge.example.com/api/detect",
		},
		{
			name:     "bogus forwarded proto ignored",
			target:   "http://api.example.com/",
			headers:  map[string]string{"X-Forwarded-Proto": "gopher"},
			expected: "http://api.example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			assert.Equal(t, tt.expected, fingerprint.RequestURL(req))
		})
	}
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("uses resolver when context is empty", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/detect?x=1", nil)
		req.RemoteAddr = "203.0.113.7:4711"
		req.Header.Set("User-Agent", "curl/8.4.0")

		assert.Equal(t, "f037456ed1431502ac48115f7272af97", fingerprint.FromRequest(req))
	})

	t.Run("prefers ip from context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/detect?x=1", nil)
		req.RemoteAddr = "198.51.100.1:4711"
		req.Header.Set("User-Agent", "curl/8.4.0")
		req = req.WithContext(clientip.SetIPToContext(req.Context(), "203.0.113.7"))

		assert.Equal(t, "f037456ed1431502ac48115f7272af97", fingerprint.FromRequest(req))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	handler := fingerprint.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = fingerprint.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/detect?x=1", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	req.Header.Set("User-Agent", "curl/8.4.0")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "f037456ed1431502ac48115f7272af97", got)
	assert.Empty(t, fingerprint.FromContext(req.Context()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := fingerprint.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(fingerprint.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "fingerprint", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
