package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/stablescout/stablescout/log"
	"github.com/stablescout/stablescout/relay"
	"github.com/stablescout/stablescout/server"
)

// Handlers holds references to server components
type Handlers struct {
	server *server.Server
}

// NewHandlers creates a new Handlers instance with server reference
func NewHandlers(srv *server.Server) *Handlers {
	return &Handlers{server: srv}
}

// upstreamContext is cancelled when the client goes away or the server
// shuts down, and carries the request ID for the upstream call.
func (h *Handlers) upstreamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	stop := context.AfterFunc(h.server.ShutdownContext(), cancel)

	ctx = relay.WithRequestID(ctx, log.RequestID(c))
	return ctx, func() {
		stop()
		cancel()
	}
}
