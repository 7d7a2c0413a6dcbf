package apikey

import "errors"

var (
	ErrMissingKey      = errors.New("apikey: API key required")
	ErrInvalidKey      = errors.New("apikey: invalid API key")
	ErrEmptyRegistry   = errors.New("apikey: registry has no keys")
	ErrEmptyName       = errors.New("apikey: key name is empty")
	ErrEmptySecret     = errors.New("apikey: key secret is empty")
	ErrDuplicateSecret = errors.New("apikey: secret registered under more than one name")
	ErrLoadFile        = errors.New("apikey: failed to load keys file")
)
