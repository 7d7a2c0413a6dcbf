package useragent

import "errors"

// Parse errors. Parse still returns a best-effort UserAgent alongside them.
var (
	ErrEmptyUserAgent     = errors.New("useragent: empty string")
	ErrMalformedUserAgent = errors.New("useragent: no recognizable tokens")
	ErrUnknownDevice      = errors.New("useragent: device type not recognized")
)
