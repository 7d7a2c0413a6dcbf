package apikey

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Request locations of the API key.
const (
	HeaderName = "X-API-Key"
	QueryParam = "api_key"
)

// Key is an authenticated API key. Only the logical name leaves the registry.
type Key struct {
	Name string
}

type entry struct {
	name   string
	secret []byte
}

// Registry maps logical key names (web, android, ...) to secrets.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	entries []entry
}

// NewRegistry validates keys and builds a registry.
// Names and secrets are trimmed; every secret must be unique.
func NewRegistry(keys map[string]string) (*Registry, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyRegistry
	}

	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]string, len(keys))
	entries := make([]entry, 0, len(keys))
	for _, rawName := range names {
		name := strings.TrimSpace(rawName)
		secret := strings.TrimSpace(keys[rawName])
		if name == "" {
			return nil, ErrEmptyName
		}
		if secret == "" {
			return nil, errors.Join(ErrEmptySecret, fmt.Errorf("key %q", name))
		}
		if other, ok := seen[secret]; ok {
			return nil, errors.Join(ErrDuplicateSecret, fmt.Errorf("keys %q and %q", other, name))
		}
		seen[secret] = name
		entries = append(entries, entry{name: name, secret: []byte(secret)})
	}

	return &Registry{entries: entries}, nil
}

// Names returns the registered key names in sorted order.
func (reg *Registry) Names() []string {
	names := make([]string, len(reg.entries))
	for i, e := range reg.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered keys.
func (reg *Registry) Len() int { return len(reg.entries) }

// Lookup finds the key matching secret. Every registered secret is compared
// in constant time so the response time does not reveal partial matches.
func (reg *Registry) Lookup(secret string) (Key, bool) {
	presented := []byte(secret)
	match := -1
	for i, e := range reg.entries {
		if subtle.ConstantTimeCompare(presented, e.secret) == 1 {
			match = i
		}
	}
	if match < 0 {
		return Key{}, false
	}
	return Key{Name: reg.entries[match].name}, true
}

// Extract returns the presented key: the X-API-Key header, or the api_key
// query parameter when the header is absent or empty. The value is not
// trimmed; a padded key does not match its secret.
func Extract(r *http.Request) string {
	if key := r.Header.Get(HeaderName); key != "" {
		return key
	}
	return r.URL.Query().Get(QueryParam)
}

// Authenticate checks the key presented with r.
// It returns ErrMissingKey when no key was sent and ErrInvalidKey when the
// key is not registered.
func Authenticate(reg *Registry, r *http.Request) (Key, error) {
	presented := Extract(r)
	if presented == "" {
		return Key{}, ErrMissingKey
	}
	key, ok := reg.Lookup(presented)
	if !ok {
		return Key{}, ErrInvalidKey
	}
	return key, nil
}
