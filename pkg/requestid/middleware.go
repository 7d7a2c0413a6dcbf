package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the request and response header carrying the request ID.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// Generator produces new request IDs.
type Generator func() string

// Option configures the middleware.
type Option func(*options)

type options struct {
	generator  Generator
	trustInput bool
}

// WithGenerator replaces the default UUIDv7 generator.
func WithGenerator(g Generator) Option {
	return func(o *options) {
		if g != nil {
			o.generator = g
		}
	}
}

// WithTrustInput controls whether a valid client supplied ID is reused.
// Enabled by default.
func WithTrustInput(trust bool) Option {
	return func(o *options) { o.trustInput = trust }
}

// NewID returns a time ordered UUIDv7, falling back to a random UUIDv4.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New builds a middleware that attaches a request ID to the request context
// and echoes it in the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{generator: NewID, trustInput: true}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !o.trustInput || !IsValid(id) {
				id = o.generator()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

// IsValid reports whether id is acceptable as a client supplied request ID.
func IsValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
