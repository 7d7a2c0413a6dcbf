package detect

import "errors"

var (
	ErrEncodeRecord = errors.New("detect: failed to encode record")
	ErrDecodeRecord = errors.New("detect: failed to decode record")
	ErrClearCache   = errors.New("detect: failed to clear cache")
	ErrStats        = errors.New("detect: failed to read cache stats")
)
