// Package core holds the HTTP plumbing shared by every route: JSON rendering,
// the client-facing error taxonomy and the adapters that keep internal
// failures out of responses.
//
// Handlers return a Response or an error:
//
//	r.Get("/api/health", core.Handle(log, func(r *http.Request) (core.Response, error) {
//		return core.JSON(http.StatusOK, health), nil
//	}))
//
// An HTTPError is rendered with its own status and message. Anything else is
// logged server-side and rendered as ErrInternalServerError, so error bodies
// always look like
//
//	{"error": "Forbidden", "message": "Invalid API key", "code": 403, "request_id": "..."}
package core
