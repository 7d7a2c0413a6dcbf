package redis

import "errors"

var (
	ErrEmptyURL    = errors.New("redis: empty connection URL")
	ErrInvalidURL  = errors.New("redis: invalid connection URL")
	ErrNotReady    = errors.New("redis: not ready after retries")
	ErrUnavailable = errors.New("redis: ping failed")
	ErrEmptyKey    = errors.New("redis: empty key")
)
