package core

import "net/http"

// HTTPError is an error that is safe to show to API clients.
// Title is the short error name, Message the human readable explanation.
type HTTPError struct {
	Code    int
	Title   string
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// Status returns the HTTP status code, defaulting to 500.
func (e HTTPError) Status() int {
	if e.Code < 400 || e.Code > 599 {
		return http.StatusInternalServerError
	}
	return e.Code
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "Bad request")
	ErrUnauthorized        = NewHTTPError(http.StatusUnauthorized, "API key required")
	ErrForbidden           = NewHTTPError(http.StatusForbidden, "Invalid API key")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "Endpoint not found")
	ErrMethodNotAllowed    = NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "Service unavailable")
)

// NewHTTPError creates an HTTPError titled with the standard status text.
//
//	err := core.NewHTTPError(http.StatusConflict, "Cache is being rebuilt")
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Title: http.StatusText(code), Message: message}
}
