package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/clientip"
	"github.com/dmitrymomot/clientdetect/pkg/fingerprint"
	"github.com/dmitrymomot/clientdetect/pkg/httpserver"
	"github.com/dmitrymomot/clientdetect/pkg/logger"
	"github.com/dmitrymomot/clientdetect/pkg/metrics"
	"github.com/dmitrymomot/clientdetect/pkg/ratelimit"
	"github.com/dmitrymomot/clientdetect/pkg/redis"
	"github.com/dmitrymomot/clientdetect/pkg/requestid"
	"github.com/dmitrymomot/clientdetect/pkg/tracing"
	"github.com/dmitrymomot/clientdetect/pkg/useragent"
	"github.com/dmitrymomot/clientdetect/svc/detect"
)

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the detection API",
		Long:  `Run the HTTP API and, when enabled, the Prometheus metrics listener.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg appConfig) error {
	log := cfg.newLogger(
		requestid.LoggerExtractor(),
		clientip.LoggerExtractor(),
		apikey.LoggerExtractor(),
		fingerprint.LoggerExtractor(),
	)
	logger.SetAsDefault(log)

	registry, err := cfg.apiKeys()
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "api keys loaded", slog.Any("names", registry.Names()))

	shutdownTracing, err := tracing.Setup(tracing.Config{
		Enabled:        cfg.TracingEnabled,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.env().String(),
		Writer:         os.Stdout,
		Pretty:         cfg.TracingPretty,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.WarnContext(flushCtx, "tracing shutdown failed", logger.Error(err))
		}
	}()

	resolverOpts := []clientip.Option{clientip.WithTrustPrivate(cfg.TrustPrivateIPs)}
	if len(cfg.IPHeaders) > 0 {
		resolverOpts = append(resolverOpts, clientip.WithHeaders(cfg.IPHeaders...))
	}
	resolver := clientip.New(resolverOpts...)

	g, ctx := errgroup.WithContext(ctx)
	checks := map[string]detect.CheckFunc{}

	var store detect.Store = detect.NopStore{}
	switch {
	case !cfg.CacheEnabled:
		log.InfoContext(ctx, "metadata cache disabled")
	case cfg.RedisEnabled:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		rs := detect.NewRedisStore(redis.NewStorage(client, cfg.Redis), cfg.CacheTTL.Std())
		checks["redis"] = rs.Ping
		store = rs
		log.InfoContext(ctx, "metadata cache on redis", slog.Duration("ttl", cfg.CacheTTL.Std()))
	default:
		ms := detect.NewMemoryStore(cfg.CacheMaxSize, cfg.CacheTTL.Std())
		g.Go(func() error { return ms.RunJanitor(ctx, cfg.CacheJanitorInterval.Std()) })
		store = ms
		log.InfoContext(ctx, "metadata cache in memory",
			slog.Int("max_size", cfg.CacheMaxSize),
			slog.Duration("ttl", cfg.CacheTTL.Std()))
	}

	counters := metrics.NewCounters()
	svcOpts := []detect.Option{
		detect.WithStore(store),
		detect.WithResolver(resolver),
		detect.WithCounters(counters),
		detect.WithLogger(log),
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector(counters, func() int {
			n, err := store.Len(context.Background())
			if err != nil {
				return 0
			}
			return n
		})
		svcOpts = append(svcOpts, detect.WithClassifyHook(func(ct useragent.ClientType) {
			collector.ObserveClientType(ct.String())
		}))
	}
	svc := detect.NewService(svcOpts...)

	var limiter ratelimit.Limiter
	if cfg.RateLimitEnabled {
		tb, err := ratelimit.NewTokenBucket(ratelimit.Config{
			Requests: cfg.MaxRequestsPerMinute,
			Window:   cfg.RateLimitWindow.Std(),
			MaxKeys:  cfg.RateLimitMaxKeys,
		})
		if err != nil {
			return err
		}
		limiter = tb
	}

	router, err := detect.NewRouter(detect.RouterConfig{
		Service:        svc,
		Registry:       registry,
		Resolver:       resolver,
		Logger:         log,
		Collector:      collector,
		Limiter:        limiter,
		Checks:         checks,
		AllowedOrigins: cfg.corsOrigins(),
		Compression:    cfg.CompressionEnabled,
		Tracing:        cfg.TracingEnabled,
		DebugRoutes:    cfg.debugRoutes(),
		Environment:    cfg.env(),
		Version:        version,
	})
	if err != nil {
		return err
	}

	api := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithName("api"),
		httpserver.WithLogger(log),
	)
	g.Go(func() error { return api.Run(ctx, router) })

	if collector != nil {
		metricsSrv := httpserver.New(
			httpserver.WithAddr(cfg.MetricsAddr),
			httpserver.WithName("metrics"),
			httpserver.WithLogger(log),
		)
		g.Go(func() error { return metricsSrv.Run(ctx, newMetricsRouter(collector)) })
	}

	log.InfoContext(ctx, "clientdetect starting",
		slog.String("version", version),
		slog.String("env", cfg.env().String()),
		slog.Bool("debug_routes", cfg.debugRoutes()),
		slog.Bool("rate_limit", cfg.RateLimitEnabled),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("clientdetect stopped")
	return nil
}

// newMetricsRouter serves the Prometheus exposition on its own listener,
// away from the API key gate.
func newMetricsRouter(collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", collector.Handler())
	return r
}
