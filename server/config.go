package server

import (
	"time"

	"github.com/stablescout/stablescout/config"
	"github.com/stablescout/stablescout/relay"
)

// Config holds server configuration
type Config struct {
	// Server infrastructure (immutable, requires restart)
	Port int
	Host string
	Env  string // "development" or "production"

	// Static page shell
	StaticDir string

	// Upstream analysis service
	UpstreamURL     string
	UpstreamTimeout time.Duration
	HealthTimeout   time.Duration

	// Per-client limits on analysis endpoints
	AnalyzeRateLimit float64
	AnalyzeRateBurst int

	// CORS; empty means all origins in development and none in production
	CORSAllowedOrigins []string
}

// NewConfig derives the server configuration from the application config
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Port:               cfg.Port,
		Host:               cfg.Host,
		Env:                cfg.Env,
		StaticDir:          cfg.StaticDir,
		UpstreamURL:        cfg.UpstreamURL,
		UpstreamTimeout:    cfg.UpstreamTimeout,
		HealthTimeout:      cfg.HealthTimeout,
		AnalyzeRateLimit:   cfg.AnalyzeRateLimit,
		AnalyzeRateBurst:   cfg.AnalyzeRateBurst,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// ToRelayConfig converts server config to relay client config
func (c *Config) ToRelayConfig(metrics *relay.Metrics) relay.Config {
	return relay.Config{
		BaseURL:       c.UpstreamURL,
		Timeout:       c.UpstreamTimeout,
		HealthTimeout: c.HealthTimeout,
		Metrics:       metrics,
	}
}
