package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port int
	Host string
	Env  string // "development" or "production"

	// Static shell served at / (index.html) and /static/*
	StaticDir string

	// Upstream analysis service
	UpstreamURL     string
	UpstreamTimeout time.Duration
	HealthTimeout   time.Duration

	// Inbound limits for /api/analyze*
	AnalyzeRateLimit float64 // requests per second per client
	AnalyzeRateBurst int

	// CORS
	CORSAllowedOrigins []string

	// Logging
	LogLevel string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton)
func Get() *Config {
	once.Do(func() {
		loadDotEnv()
		cfg = load()
	})
	return cfg
}

// loadDotEnv reads .env files into the process environment.
// Variables already present in the environment are left untouched.
func loadDotEnv() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

// load reads configuration from environment variables
func load() *Config {
	upstream := getEnv("UPSTREAM_API_URL", "")
	if upstream == "" {
		// Legacy name, still honoured
		upstream = getEnv("PYTHON_API_URL", "http://localhost:5000")
	}

	return &Config{
		// Server
		Port: getEnvInt("PORT", 3000),
		Host: getEnv("HOST", "0.0.0.0"),
		Env:  getEnv("ENV", "development"),

		StaticDir: getEnv("STATIC_DIR", "public"),

		// Upstream
		UpstreamURL:     strings.TrimRight(upstream, "/"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 60*time.Second),
		HealthTimeout:   getEnvDuration("HEALTH_TIMEOUT", 5*time.Second),

		// Limits
		AnalyzeRateLimit: getEnvFloat("ANALYZE_RATE_LIMIT", 2),
		AnalyzeRateBurst: getEnvInt("ANALYZE_RATE_BURST", 4),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds ("90").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
