package detect

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"

	"github.com/dmitrymomot/clientdetect/core"
	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/clientip"
	"github.com/dmitrymomot/clientdetect/pkg/environment"
	"github.com/dmitrymomot/clientdetect/pkg/fingerprint"
	"github.com/dmitrymomot/clientdetect/pkg/logger"
	"github.com/dmitrymomot/clientdetect/pkg/metrics"
	"github.com/dmitrymomot/clientdetect/pkg/ratelimit"
	"github.com/dmitrymomot/clientdetect/pkg/requestid"
	"github.com/dmitrymomot/clientdetect/pkg/tracing"
)

var (
	ErrNoService  = errors.New("detect: router requires a service")
	ErrNoRegistry = errors.New("detect: router requires an API key registry")
)

// RouterConfig wires the HTTP API. Optional parts are disabled when nil or false.
type RouterConfig struct {
	Service  *Service
	Registry *apikey.Registry
	Resolver *clientip.Resolver
	Logger   *slog.Logger

	Collector *metrics.Collector
	Limiter   ratelimit.Limiter
	Checks    map[string]CheckFunc

	AllowedOrigins []string // empty disables CORS
	Compression    bool
	Tracing        bool
	DebugRoutes    bool

	Environment environment.Environment
	Version     string
	Clock       func() time.Time
}

// NewRouter builds the /api routes. Health, readiness and debug routes are
// public; everything else requires a registered API key.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	if cfg.Service == nil {
		return nil, ErrNoService
	}
	if cfg.Registry == nil {
		return nil, ErrNoRegistry
	}
	if cfg.Resolver == nil {
		cfg.Resolver = cfg.Service.resolver
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Environment == "" {
		cfg.Environment = environment.Development
	}

	log := cfg.Logger
	h := &handlers{
		svc:      cfg.Service,
		resolver: cfg.Resolver,
		log:      log,
		version:  cfg.Version,
		env:      cfg.Environment,
		checks:   cfg.Checks,
		now:      cfg.Clock,
	}

	var onPanic func()
	if cfg.Collector != nil {
		onPanic = cfg.Collector.ObservePanic
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		environment.Middleware(cfg.Environment),
		core.Recoverer(log, onPanic),
		clientip.Middleware(cfg.Resolver),
		accessLog(log),
	)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", apikey.HeaderName, requestid.Header},
			ExposedHeaders:   []string{requestid.Header, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	if cfg.Compression {
		r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })
	}
	if cfg.Tracing {
		r.Use(tracing.Middleware("clientdetect"))
	}
	if cfg.Collector != nil {
		r.Use(cfg.Collector.Middleware)
	}

	r.NotFound(core.Handle(log, notFound))
	r.MethodNotAllowed(core.Handle(log, methodNotAllowed))

	r.Route("/api", func(r chi.Router) {
		r.NotFound(core.Handle(log, notFound))
		r.MethodNotAllowed(core.Handle(log, methodNotAllowed))

		r.Get("/health", core.Handle(log, h.health))
		r.Get("/ready", core.Handle(log, h.ready))
		if cfg.DebugRoutes {
			r.Get("/debug/ip-info", core.Handle(log, h.ipInfo))
		}

		r.Group(func(r chi.Router) {
			r.Use(apikey.Middleware(apikey.MiddlewareConfig{
				Registry:     cfg.Registry,
				ErrorHandler: authError,
			}))
			if cfg.Limiter != nil {
				r.Use(ratelimit.Middleware(cfg.Limiter,
					ratelimit.FirstOf(ratelimit.ByAPIKey, ratelimit.ByClientIP),
					ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ ratelimit.Result) {
						if cfg.Collector != nil {
							cfg.Collector.ObserveRateLimited()
						}
						core.WriteError(w, r, core.ErrTooManyRequests)
					}),
					ratelimit.WithOnError(func(r *http.Request, err error) {
						log.WarnContext(r.Context(), "rate limiter failed", logger.Error(err))
					}),
				))
			}

			r.Group(func(r chi.Router) {
				r.Use(fingerprint.Middleware)
				r.Get("/detect", core.Handle(log, h.detect))
				r.Post("/detect", core.Handle(log, h.detect))
				r.Get("/detect/simple", core.Handle(log, h.detectSimple))
				r.Post("/detect/simple", core.Handle(log, h.detectSimple))
			})
			r.Get("/stats", core.Handle(log, h.stats))
			r.Post("/clear-cache", core.Handle(log, h.clearCache))
		})
	})

	return r, nil
}
