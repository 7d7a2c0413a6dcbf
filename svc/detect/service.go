package detect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/clientdetect/pkg/clientip"
	"github.com/dmitrymomot/clientdetect/pkg/fingerprint"
	"github.com/dmitrymomot/clientdetect/pkg/logger"
	"github.com/dmitrymomot/clientdetect/pkg/metrics"
	"github.com/dmitrymomot/clientdetect/pkg/tracing"
	"github.com/dmitrymomot/clientdetect/pkg/useragent"
)

// statsKeySample is how many cache keys Stats reports.
const statsKeySample = 10

// Service assembles request metadata and memoizes it per fingerprint.
type Service struct {
	store      Store
	resolver   *clientip.Resolver
	counters   *metrics.Counters
	log        *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
	onClassify func(useragent.ClientType)

	group singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithStore replaces the default NopStore.
func WithStore(s Store) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

func WithResolver(r *clientip.Resolver) Option {
	return func(svc *Service) {
		if r != nil {
			svc.resolver = r
		}
	}
}

func WithCounters(c *metrics.Counters) Option {
	return func(svc *Service) {
		if c != nil {
			svc.counters = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// WithClassifyHook is called with the client type of every classified request.
func WithClassifyHook(fn func(useragent.ClientType)) Option {
	return func(svc *Service) { svc.onClassify = fn }
}

// NewService returns a Service. Without WithStore nothing is cached.
func NewService(opts ...Option) *Service {
	svc := &Service{
		store:    NopStore{},
		resolver: clientip.New(),
		counters: metrics.NewCounters(),
		log:      slog.Default(),
		tracer:   tracing.Tracer("github.com/dmitrymomot/clientdetect/svc/detect"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Counters exposes the traffic counters shared with the metrics collector.
func (s *Service) Counters() *metrics.Counters { return s.counters }

// CountRequest records one detection request. Called by the HTTP handlers,
// never by Assemble, so cache traffic and request traffic stay separate.
func (s *Service) CountRequest() { s.counters.IncRequests() }

// ClientIP returns the address resolved by the clientip middleware, or
// resolves it when the middleware is not mounted.
func (s *Service) ClientIP(r *http.Request) string {
	if ip := clientip.GetIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return s.resolver.FromRequest(r)
}

// Assemble returns the metadata record for r and whether it came from the
// cache. Each call counts exactly one hit or one miss. Concurrent calls with
// the same fingerprint build the record once; the callers that waited count
// as hits. Store failures are logged and the record is built fresh.
func (s *Service) Assemble(ctx context.Context, r *http.Request) (Record, bool, error) {
	ip := s.ClientIP(r)
	requestURL := fingerprint.RequestURL(r)
	fp := fingerprint.FromContext(r.Context())
	if fp == "" {
		fp = fingerprint.Generate(ip, r.UserAgent(), r.Method, requestURL)
	}

	ctx, span := s.tracer.Start(ctx, "detect.Assemble", trace.WithAttributes(
		attribute.String("fingerprint", fp),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}

	rec, ok, err := s.store.Get(ctx, fp)
	if err != nil {
		s.log.WarnContext(ctx, "cache lookup failed", logger.Fingerprint(fp), logger.Error(err))
	}
	if ok {
		s.counters.IncHits()
		s.finish(span, rec, true)
		return rec, true, nil
	}

	built := false
	v, _, _ := s.group.Do(fp, func() (any, error) {
		built = true
		rec := buildRecord(r, ip, requestURL, s.now())
		if err := s.store.Set(context.WithoutCancel(ctx), fp, rec); err != nil {
			s.log.WarnContext(ctx, "cache store failed", logger.Fingerprint(fp), logger.Error(err))
		}
		return rec, nil
	})
	rec = v.(Record)

	if built {
		s.counters.IncMisses()
	} else {
		s.counters.IncHits()
	}
	s.finish(span, rec, !built)
	return rec, !built, nil
}

func (s *Service) finish(span trace.Span, rec Record, hit bool) {
	span.SetAttributes(
		attribute.String("client_type", rec.ClientType.String()),
		attribute.Bool("cache_hit", hit),
	)
	s.Observe(rec.ClientType)
}

// Observe reports a classified client type to the classify hook.
func (s *Service) Observe(ct useragent.ClientType) {
	if s.onClassify != nil {
		s.onClassify(ct)
	}
}

// ClearCache empties the store.
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return errors.Join(ErrClearCache, err)
	}
	s.log.InfoContext(ctx, "cache cleared")
	return nil
}

// CacheSize reports the number of cached records, or 0 when the store fails.
func (s *Service) CacheSize(ctx context.Context) int {
	n, err := s.store.Len(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "cache size unavailable", logger.Error(err))
		return 0
	}
	return n
}

// CacheInfo describes the store contents.
type CacheInfo struct {
	Size      int      `json:"size"`
	Keys      []string `json:"keys"`
	Evictions *uint64  `json:"evictions,omitempty"`
}

// Stats pairs the counters with the store contents.
type Stats struct {
	Performance metrics.Snapshot `json:"performance"`
	CacheInfo   CacheInfo        `json:"cache_info"`
}

// Stats reports counters and a sample of cached fingerprints.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	size, err := s.store.Len(ctx)
	if err != nil {
		return Stats{}, errors.Join(ErrStats, err)
	}
	keys, err := s.store.Keys(ctx, statsKeySample)
	if err != nil {
		return Stats{}, errors.Join(ErrStats, err)
	}

	info := CacheInfo{Size: size, Keys: keys}
	if ev, ok := s.store.(interface{ Evictions() uint64 }); ok {
		n := ev.Evictions()
		info.Evictions = &n
	}

	return Stats{
		Performance: s.counters.Snapshot(size),
		CacheInfo:   info,
	}, nil
}
