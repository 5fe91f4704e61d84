package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stablescout/stablescout/relay"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
)

// HealthResponse is the relay's own health plus the upstream's
type HealthResponse struct {
	Status         string         `json:"status"`
	Timestamp      string         `json:"timestamp"`
	UpstreamTarget string         `json:"upstreamTarget"`
	Upstream       UpstreamHealth `json:"upstream"`
}

// UpstreamHealth summarises one upstream ping
type UpstreamHealth struct {
	Reachable bool   `json:"reachable"`
	Status    int    `json:"status,omitempty"`
	LatencyMs int64  `json:"latencyMs,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Health handles GET /api/health. An unhealthy upstream degrades the status
// but the endpoint itself still answers 200.
func (h *Handlers) Health(c *gin.Context) {
	client := h.server.Relay()

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	resp := HealthResponse{
		Status:         healthOK,
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		UpstreamTarget: client.Target(),
	}

	status, err := client.HealthCheck(ctx)
	if err != nil {
		resp.Status = healthDegraded
		resp.Upstream.Error = err.Error()
		if re, ok := relay.AsError(err); ok {
			resp.Upstream.Reachable = re.Kind == relay.KindUpstream
			resp.Upstream.Status = re.StatusCode
		}
	} else {
		resp.Upstream = UpstreamHealth{
			Reachable: true,
			Status:    status.StatusCode,
			LatencyMs: status.LatencyMs,
		}
	}

	c.JSON(http.StatusOK, resp)
}
