package detect

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/clientdetect/core"
	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/clientip"
	"github.com/dmitrymomot/clientdetect/pkg/environment"
	"github.com/dmitrymomot/clientdetect/pkg/logger"
	"github.com/dmitrymomot/clientdetect/pkg/useragent"
)

// DetectData is a Record plus the name of the key that requested it.
type DetectData struct {
	Record
	APIKeyType string `json:"api_key_type"`
}

type DetectResponse struct {
	Success   bool       `json:"success"`
	Data      DetectData `json:"data"`
	Timestamp float64    `json:"timestamp"`
}

type SimpleResponse struct {
	IP             string               `json:"ip"`
	Browser        string               `json:"browser"`
	BrowserVersion string               `json:"browser_version"`
	OS             string               `json:"os"`
	OSVersion      string               `json:"os_version"`
	DeviceType     useragent.ClientType `json:"device_type"`
	IsMobile       bool                 `json:"is_mobile"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
	Version   string  `json:"version"`
}

type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type IPInfoResponse struct {
	RemoteAddr    string            `json:"remote_addr"`
	DetectedIP    string            `json:"detected_ip"`
	HostHeader    string            `json:"host_header"`
	UserAgent     string            `json:"user_agent"`
	IsDevelopment bool              `json:"is_development"`
	Environment   string            `json:"environment"`
	AllHeaders    map[string]string `json:"all_headers"`
	Resolution    clientip.Report   `json:"resolution"`
}

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

type handlers struct {
	svc      *Service
	resolver *clientip.Resolver
	log      *slog.Logger
	version  string
	env      environment.Environment
	checks   map[string]CheckFunc
	now      func() time.Time
}

func (h *handlers) detect(r *http.Request) (core.Response, error) {
	h.svc.CountRequest()

	rec, _, err := h.svc.Assemble(r.Context(), r)
	if err != nil {
		return nil, err
	}

	name := apikey.NameFromContext(r.Context())
	if name == "" {
		name = "unknown"
	}

	return core.JSONIndent(http.StatusOK, DetectResponse{
		Success:   true,
		Data:      DetectData{Record: rec, APIKeyType: name},
		Timestamp: unixSeconds(h.now()),
	}), nil
}

func (h *handlers) detectSimple(r *http.Request) (core.Response, error) {
	h.svc.CountRequest()

	facets, clientType := useragent.Classify(r.UserAgent())
	h.svc.Observe(clientType)

	return core.JSONIndent(http.StatusOK, SimpleResponse{
		IP:             h.svc.ClientIP(r),
		Browser:        facets.BrowserFamily,
		BrowserVersion: facets.BrowserVersion,
		OS:             facets.OSFamily,
		OSVersion:      facets.OSVersion,
		DeviceType:     clientType,
		IsMobile:       facets.IsMobile,
	}), nil
}

func (h *handlers) stats(r *http.Request) (core.Response, error) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		return nil, err
	}
	return core.JSONIndent(http.StatusOK, stats), nil
}

func (h *handlers) clearCache(r *http.Request) (core.Response, error) {
	if err := h.svc.ClearCache(r.Context()); err != nil {
		return nil, err
	}
	return core.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Cache cleared successfully",
	}), nil
}

func (h *handlers) health(*http.Request) (core.Response, error) {
	return core.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: unixSeconds(h.now()),
		Version:   h.version,
	}), nil
}

// ready runs every dependency check. Failures are logged with detail and
// reported to the caller only as "unavailable".
func (h *handlers) ready(r *http.Request) (core.Response, error) {
	resp := ReadyResponse{Status: "ready", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, name := range slices.Sorted(maps.Keys(h.checks)) {
		if err := h.checks[name](r.Context()); err != nil {
			h.log.WarnContext(r.Context(), "readiness check failed",
				logger.Component(name), logger.Error(err))
			resp.Checks[name] = "unavailable"
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	return core.JSON(status, resp), nil
}

func (h *handlers) ipInfo(r *http.Request) (core.Response, error) {
	return core.JSONIndent(http.StatusOK, IPInfoResponse{
		RemoteAddr:    r.RemoteAddr,
		DetectedIP:    h.svc.ClientIP(r),
		HostHeader:    r.Host,
		UserAgent:     r.UserAgent(),
		IsDevelopment: h.env.IsDevelopment(),
		Environment:   h.env.String(),
		AllHeaders:    flattenHeaders(r.Header),
		Resolution:    h.resolver.Explain(r.Header, r.RemoteAddr),
	}), nil
}

func notFound(*http.Request) (core.Response, error) {
	return nil, core.ErrNotFound
}

func methodNotAllowed(*http.Request) (core.Response, error) {
	return nil, core.ErrMethodNotAllowed
}

// authError renders apikey failures with the fixed 401 and 403 bodies.
func authError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apikey.ErrMissingKey):
		core.WriteError(w, r, core.ErrUnauthorized)
	case errors.Is(err, apikey.ErrInvalidKey):
		core.WriteError(w, r, core.ErrForbidden)
	default:
		core.WriteError(w, r, err)
	}
}
