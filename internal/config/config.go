package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/aman11srivastava/shopping-cart/pkg/config"
	"github.com/aman11srivastava/shopping-cart/pkg/httpclient"
	"github.com/aman11srivastava/shopping-cart/pkg/tracing"
)

// maxCatalogRetries bounds CATALOG_MAX_RETRIES.
const maxCatalogRetries = 10

// Config holds all configuration for the storefront and the catalog stub server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFile receives storefront logs; the terminal UI owns stdout.
	// Empty discards them.
	LogFile string `env:"LOG_FILE" envDefault:""`

	// Catalog client
	CatalogURL        string        `env:"CATALOG_URL" envDefault:"https://fakestoreapi.com/products"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CatalogMaxRetries int           `env:"CATALOG_MAX_RETRIES" envDefault:"3"`
	CatalogRetryMin   time.Duration `env:"CATALOG_RETRY_WAIT_MIN" envDefault:"1s"`
	CatalogRetryMax   time.Duration `env:"CATALOG_RETRY_WAIT_MAX" envDefault:"30s"`

	// Catalog circuit breaker
	BreakerTimeout      time.Duration `env:"CATALOG_BREAKER_TIMEOUT" envDefault:"30s"`
	BreakerMinRequests  uint32        `env:"CATALOG_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerFailureRatio float64       `env:"CATALOG_BREAKER_FAILURE_RATIO" envDefault:"0.5"`

	// Redis catalog cache; disabled when RedisAddr is empty.
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:""`
	RedisPass       string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	RedisSlowCmd    time.Duration `env:"REDIS_SLOW_THRESHOLD" envDefault:"100ms"`

	// AdminAddr serves health and metrics for the storefront; disabled when empty.
	AdminAddr string `env:"ADMIN_ADDR" envDefault:""`

	// Catalog stub server
	StubHTTPPort int `env:"STUB_HTTP_PORT" envDefault:"8090"`

	// Tracing
	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return LoadWithOverrides(nil)
}

// LoadWithOverrides reads configuration from environment variables, with the
// given variables taking precedence. Empty override values are ignored.
func LoadWithOverrides(overrides map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadWithOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("load shopping-cart config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	u, err := url.Parse(c.CatalogURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid catalog URL: %q", c.CatalogURL)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("invalid catalog timeout: %s", c.CatalogTimeout)
	}
	if c.CatalogMaxRetries < 0 || c.CatalogMaxRetries > maxCatalogRetries {
		return fmt.Errorf("invalid catalog max retries: %d", c.CatalogMaxRetries)
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("invalid breaker failure ratio: %v", c.BreakerFailureRatio)
	}
	if c.CatalogCacheTTL <= 0 {
		return fmt.Errorf("invalid catalog cache TTL: %s", c.CatalogCacheTTL)
	}
	if c.StubHTTPPort < 1 || c.StubHTTPPort > 65535 {
		return fmt.Errorf("invalid stub HTTP port: %d", c.StubHTTPPort)
	}
	if c.OTelSampleRate < 0 || c.OTelSampleRate > 1 {
		return fmt.Errorf("invalid OTel sample rate: %v", c.OTelSampleRate)
	}
	return nil
}

// HTTPClient returns the retry settings for catalog requests.
func (c *Config) HTTPClient() httpclient.Config {
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = c.CatalogTimeout
	cfg.MaxRetries = c.CatalogMaxRetries
	cfg.RetryWaitMin = c.CatalogRetryMin
	cfg.RetryWaitMax = c.CatalogRetryMax
	return cfg
}

// CircuitBreaker returns the breaker settings for catalog requests.
func (c *Config) CircuitBreaker() httpclient.CircuitBreakerConfig {
	cfg := httpclient.DefaultCircuitBreakerConfig("catalog")
	cfg.Timeout = c.BreakerTimeout
	cfg.MinRequests = c.BreakerMinRequests
	cfg.FailureRatio = c.BreakerFailureRatio
	return cfg
}

// Tracing returns the OpenTelemetry settings for the named service.
func (c *Config) Tracing(serviceName string) tracing.Config {
	cfg := tracing.DefaultConfig(serviceName)
	cfg.Environment = c.Environment
	cfg.OTLPEndpoint = c.OTelEndpoint
	cfg.SampleRate = c.OTelSampleRate
	cfg.Enabled = c.OTelEnabled
	return cfg
}

// CacheEnabled reports whether the redis catalog cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
