package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/config"
	"github.com/dmitrymomot/clientdetect/pkg/environment"
	"github.com/dmitrymomot/clientdetect/pkg/httpserver"
	"github.com/dmitrymomot/clientdetect/pkg/logger"
	"github.com/dmitrymomot/clientdetect/pkg/redis"
)

// Key names reported as api_key_type for keys supplied through the environment.
const (
	keyNameWeb     = "web_frontend_key"
	keyNameAndroid = "android_app_key"
	keyNameOther   = "other_project_key"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"clientdetect"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`
	Debug       bool   `env:"API_DEBUG"`

	Host string `env:"API_HOST"`
	Port int    `env:"API_PORT"`
	HTTP httpserver.Config

	DebugRoutes *bool `env:"DEBUG_ROUTES"`

	APIKeyWeb     string `env:"API_KEY_WEB"`
	APIKeyAndroid string `env:"API_KEY_ANDROID"`
	APIKeyOther   string `env:"API_KEY_OTHER"`
	APIKeysFile   string `env:"API_KEYS_FILE"`

	CacheEnabled         bool            `env:"CACHE_ENABLED" envDefault:"true"`
	CacheTTL             config.Duration `env:"CACHE_TTL" envDefault:"3600"`
	CacheMaxSize         int             `env:"CACHE_MAX_SIZE" envDefault:"10000"`
	CacheJanitorInterval config.Duration `env:"CACHE_JANITOR_INTERVAL" envDefault:"60"`

	RedisEnabled bool `env:"REDIS_ENABLED"`
	Redis        redis.Config

	RateLimitEnabled     bool            `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	MaxRequestsPerMinute int             `env:"MAX_REQUESTS_PER_MINUTE" envDefault:"1000"`
	RateLimitWindow      config.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60"`
	RateLimitMaxKeys     int             `env:"RATE_LIMIT_MAX_KEYS" envDefault:"10000"`

	EnableCORS     bool     `env:"ENABLE_CORS" envDefault:"true"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	CompressionEnabled bool `env:"COMPRESSION_ENABLED" envDefault:"true"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsAddr    string `env:"METRICS_ADDR" envDefault:":9090"`

	TracingEnabled bool `env:"TRACING_ENABLED"`
	TracingPretty  bool `env:"TRACING_PRETTY"`

	TrustPrivateIPs bool     `env:"TRUST_PRIVATE_IPS" envDefault:"true"`
	IPHeaders       []string `env:"IP_HEADERS" envSeparator:","`
}

// Validate implements config.Validator.
func (c appConfig) Validate() error {
	var errs []error
	if c.CacheEnabled && !c.RedisEnabled && c.CacheMaxSize <= 0 {
		errs = append(errs, errors.New("CACHE_MAX_SIZE must be positive"))
	}
	if c.RateLimitEnabled && c.MaxRequestsPerMinute <= 0 {
		errs = append(errs, errors.New("MAX_REQUESTS_PER_MINUTE must be positive"))
	}
	if c.RateLimitEnabled && c.RateLimitWindow.Std() <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("API_PORT %d out of range", c.Port))
	}
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if c.LogFormat != "" {
		if _, err := logger.ParseFormat(c.LogFormat); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loadConfig reads the environment, optionally seeded from envFile, and
// applies the per-environment profile.
func loadConfig(envFile string) (appConfig, error) {
	var cfg appConfig
	var opts []config.Option
	if envFile != "" {
		opts = append(opts, config.WithEnvFiles(envFile), config.WithRequiredFiles())
	} else {
		opts = append(opts, config.WithEnvFiles(".env"))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return appConfig{}, err
	}
	cfg.applyProfile(os.LookupEnv)
	return cfg, nil
}

// applyProfile fills in defaults that depend on the environment. Values set
// explicitly in the environment always win.
func (c *appConfig) applyProfile(lookup func(string) (string, bool)) {
	env := c.env()
	isSet := func(name string) bool {
		_, ok := lookup(name)
		return ok
	}

	if env.IsTesting() {
		if !isSet("CACHE_ENABLED") {
			c.CacheEnabled = false
		}
		if !isSet("RATE_LIMIT_ENABLED") {
			c.RateLimitEnabled = false
		}
	}

	if c.Port > 0 {
		c.HTTP.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
}

func (c appConfig) env() environment.Environment {
	return environment.Parse(c.Environment)
}

// debugRoutes defaults to on everywhere except production.
func (c appConfig) debugRoutes() bool {
	if c.DebugRoutes != nil {
		return *c.DebugRoutes
	}
	return !c.env().IsProduction()
}

// corsOrigins returns nil when CORS is disabled.
func (c appConfig) corsOrigins() []string {
	if !c.EnableCORS {
		return nil
	}
	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c appConfig) logLevel() slog.Level {
	switch {
	case c.LogLevel != "":
		l, _ := logger.ParseLevel(c.LogLevel)
		return l
	case c.Debug:
		return slog.LevelDebug
	case c.env().IsProduction():
		return slog.LevelWarn
	case c.env().IsDevelopment():
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func (c appConfig) newLogger(extractors ...logger.ContextExtractor) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(c.env(), c.ServiceName),
		logger.WithLevel(c.logLevel()),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(extractors...),
	}
	if c.LogFormat != "" {
		f, _ := logger.ParseFormat(c.LogFormat)
		opts = append(opts, logger.WithFormat(f))
	}
	return logger.New(opts...)
}

// apiKeys merges the keys file with the API_KEY_* variables. Environment
// variables override file entries of the same name.
func (c appConfig) apiKeys() (*apikey.Registry, error) {
	keys := map[string]string{}
	if c.APIKeysFile != "" {
		fromFile, err := apikey.LoadFile(c.APIKeysFile)
		if err != nil {
			return nil, err
		}
		for name, secret := range fromFile {
			keys[name] = secret
		}
	}

	for name, secret := range map[string]string{
		keyNameWeb:     c.APIKeyWeb,
		keyNameAndroid: c.APIKeyAndroid,
		keyNameOther:   c.APIKeyOther,
	} {
		if secret != "" {
			keys[name] = secret
		}
	}
	return apikey.NewRegistry(keys)
}
