package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stablescout/stablescout/log"
	"github.com/stablescout/stablescout/relay"
)

const metricsPath = "/metrics"

// Server owns and coordinates all application components
type Server struct {
	cfg *Config

	// Components (owned by server)
	registry *prometheus.Registry
	relay    *relay.Client

	// Shutdown context - cancelled when server is shutting down.
	// In-flight relay calls derive from it.
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc

	// HTTP
	router *gin.Engine
	http   *http.Server
}

// New creates a new server with all components initialized
func New(cfg *Config) (*Server, error) {
	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("upstream URL is not configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:            cfg,
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}

	// 1. Metrics registry
	s.registry = prometheus.NewRegistry()
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 2. Relay client
	log.Info().Str("upstream", cfg.UpstreamURL).Msg("initializing relay client")
	s.relay = relay.New(cfg.ToRelayConfig(relay.NewMetrics(s.registry)))

	// 3. Setup HTTP router
	s.setupRouter()

	log.Info().Msg("server initialized successfully")
	return s, nil
}

// setupRouter creates and configures the Gin router
func (s *Server) setupRouter() {
	// Set Gin mode
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	s.router = gin.New()

	// Middleware
	s.router.Use(gin.Recovery())
	s.router.Use(log.GinLogger())

	if corsMW := s.corsMiddleware(); corsMW != nil {
		s.router.Use(corsMW)
	}

	// Security headers (production only)
	if !s.cfg.IsDevelopment() {
		s.router.Use(s.securityHeadersMiddleware())
	}

	// Gzip compression (prometheus negotiates its own encoding)
	s.router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{
		metricsPath,
	})))

	// Trust proxy headers
	s.router.SetTrustedProxies(nil)

	// Ignore .well-known requests
	s.router.GET("/.well-known/*path", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	s.router.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	// Page shell
	s.router.GET("/", serveStaticFile(filepath.Join(s.cfg.StaticDir, "index.html")))
	s.router.GET("/static/*filepath", serveStaticAssets(s.cfg.StaticDir))

	// Note: API routes should be set up by calling code (main.go)
	// to avoid import cycles
}

// corsMiddleware returns nil when no cross-origin access is allowed
func (s *Server) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	switch {
	case len(s.cfg.CORSAllowedOrigins) > 0:
		cfg.AllowOrigins = s.cfg.CORSAllowedOrigins
	case s.cfg.IsDevelopment():
		cfg.AllowAllOrigins = true
	default:
		return nil
	}
	return cors.New(cfg)
}

// securityHeadersMiddleware adds security headers for production
func (s *Server) securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// HSTS - enforce HTTPS for 1 year, include subdomains
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Clickjacking protection
		c.Header("X-Frame-Options", "SAMEORIGIN")

		// Referrer policy - don't leak full URLs to other origins
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

// serveStaticAssets serves files below basePath with a one-day cache
func serveStaticAssets(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filePath := c.Param("filepath")

		// Security: prevent path traversal
		if strings.Contains(filePath, "..") {
			c.Status(http.StatusForbidden)
			return
		}

		fullPath := filepath.Join(basePath, filePath)
		if info, err := os.Stat(fullPath); err != nil || info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", "public, max-age=86400, must-revalidate")
		c.File(fullPath)
	}
}

// serveStaticFile serves a single uncached file, 404 when absent
func serveStaticFile(filePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := os.Stat(filePath); err != nil {
			c.Status(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", "no-cache")
		c.File(filePath)
	}
}

// CheckUpstream pings the upstream once and only warns on failure.
func (s *Server) CheckUpstream(ctx context.Context) {
	status, err := s.relay.HealthCheck(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Str("upstream", s.relay.Target()).
			Msg("upstream analysis service is not reachable; queries will fail until it is")
		return
	}
	log.Info().
		Str("upstream", s.relay.Target()).
		Int64("latency_ms", status.LatencyMs).
		Msg("upstream analysis service reachable")
}

// Start starts the upstream check and the HTTP server
func (s *Server) Start() error {
	log.Info().Msg("starting server components")

	go s.CheckUpstream(s.shutdownCtx)

	// Create HTTP server
	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.StdErrorLogger(), // Route Go's internal HTTP errors through zerolog
	}

	log.Info().
		Str("addr", s.http.Addr).
		Str("env", s.cfg.Env).
		Str("upstream", s.relay.Target()).
		Msg("HTTP server starting")

	// Start HTTP server (blocks)
	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down server")

	// 1. Cancel in-flight upstream calls
	s.shutdownCancel()

	// 2. Shutdown HTTP server (stop accepting new requests and wait for existing ones)
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http server shutdown error")
			return err
		}
	}

	log.Info().Msg("server shutdown complete")
	return nil
}

// Component accessors for API handlers
func (s *Server) Config() *Config                  { return s.cfg }
func (s *Server) Relay() *relay.Client             { return s.relay }
func (s *Server) Registry() *prometheus.Registry   { return s.registry }
func (s *Server) Router() *gin.Engine              { return s.router }
func (s *Server) ShutdownContext() context.Context { return s.shutdownCtx }
