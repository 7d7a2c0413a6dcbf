package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*options)

// Timeouts groups the http.Server timeouts. Zero fields keep the defaults.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
}

func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

func WithTimeouts(t Timeouts) Option {
	return func(o *options) {
		if t.ReadHeader > 0 {
			o.timeouts.ReadHeader = t.ReadHeader
		}
		if t.Read > 0 {
			o.timeouts.Read = t.Read
		}
		if t.Write > 0 {
			o.timeouts.Write = t.Write
		}
		if t.Idle > 0 {
			o.timeouts.Idle = t.Idle
		}
		if t.Shutdown > 0 {
			o.timeouts.Shutdown = t.Shutdown
		}
	}
}

// WithName labels log lines so several servers in one process can be told apart.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
