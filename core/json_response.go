package core

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/clientdetect/pkg/requestid"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
	indent bool
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	var (
		data []byte
		err  error
	)
	if j.indent {
		data, err = json.MarshalIndent(j.body, "", "  ")
	} else {
		data, err = json.Marshal(j.body)
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(data, '\n'))
	return err
}

// JSON renders v with the given status code.
func JSON(status int, v any) Response {
	return jsonResponse{status: status, body: v}
}

// JSONIndent is JSON with two-space indentation.
func JSONIndent(status int, v any) Response {
	return jsonResponse{status: status, body: v, indent: true}
}

type errorResponse struct {
	err HTTPError
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	body := ErrorBody{
		Error:     e.err.Title,
		Message:   e.err.Message,
		Code:      e.err.Status(),
		RequestID: requestid.FromContext(r.Context()),
	}
	return JSON(body.Code, body).Render(w, r)
}

// JSONError renders err as an ErrorBody. Errors that are not an HTTPError
// are reported as a generic 500 without leaking their text.
func JSONError(err error) Response {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = ErrInternalServerError
	}
	return errorResponse{err: httpErr}
}

// WriteError renders err directly. Useful in middleware.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	_ = JSONError(err).Render(w, r)
}
