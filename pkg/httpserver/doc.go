// Package httpserver wraps net/http.Server with context driven lifecycle.
//
// Run binds the listener, serves until the context is cancelled and then
// shuts down gracefully within the configured timeout. Signal handling is
// left to the caller (signal.NotifyContext), which lets one process run the
// API and metrics servers side by side under an errgroup.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
package httpserver
