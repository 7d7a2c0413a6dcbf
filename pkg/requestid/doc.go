// Package requestid attaches a correlation ID to every HTTP request.
//
// The middleware reuses a well formed X-Request-ID header sent by the client
// or generates a UUIDv7, stores it in the request context and echoes it back
// in the response. LoggerExtractor plugs the ID into structured logs, and
// JSON error bodies include it so clients can quote it in bug reports.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
