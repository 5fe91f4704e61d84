package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handlers) {
	cfg := h.server.Config()

	// API group
	api := r.Group("/api")
	api.Use(RequestIDMiddleware())

	// Health
	api.GET("/health", h.Health)

	// Analysis (relayed upstream, rate limited per client)
	analyze := api.Group("/analyze")
	analyze.Use(RateLimitMiddleware(cfg.AnalyzeRateLimit, cfg.AnalyzeRateBurst))
	analyze.POST("", h.Analyze)
	analyze.POST("/transcript", h.AnalyzeTranscript)

	// Rendering only
	api.POST("/render", h.Render)
}
