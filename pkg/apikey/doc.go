// Package apikey authenticates requests against a static set of named keys.
//
// A Registry is built once at startup from a name to secret mapping, taken
// from environment variables or a YAML file (LoadFile), and never changes
// afterwards. Clients present a secret in the X-API-Key header or the api_key
// query parameter. A missing key yields ErrMissingKey (401), an unknown one
// ErrInvalidKey (403). On success the logical key name is available through
// FromContext.
//
//	reg, err := apikey.NewRegistry(map[string]string{"web": webKey, "android": androidKey})
//	...
//	r.With(apikey.Middleware(apikey.MiddlewareConfig{Registry: reg})).Get("/api/detect", h)
package apikey
