// Package logger builds log/slog loggers for the service.
//
// New picks JSON or text output and a level, and wraps the handler so that
// request scoped values (request ID, client IP, API key name, environment)
// are added automatically when a record is logged with a request context:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "clientdetect"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "classified", logger.ClientType("api_tool"))
//
// The attribute helpers keep key names consistent across packages.
package logger
