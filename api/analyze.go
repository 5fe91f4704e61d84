package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stablescout/stablescout/log"
	"github.com/stablescout/stablescout/render"
)

// Request bodies larger than this are rejected before decoding
const maxRequestBytes = 1 << 20

// AnalyzeRequest is the inbound analysis request
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// TranscriptResponse is a rendered analysis
type TranscriptResponse struct {
	Blocks []render.Block `json:"blocks"`
	HTML   string         `json:"html"`
}

func newTranscriptResponse(raw json.RawMessage) TranscriptResponse {
	blocks := render.Render(raw)
	return TranscriptResponse{Blocks: blocks, HTML: render.TranscriptHTML(blocks)}
}

// bindQuery decodes and validates the request; it responds itself on failure.
func bindQuery(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondPayloadTooLarge(c, tooLarge.Limit)
			return "", false
		}
		RespondBadRequest(c, msgInvalidRequest, err.Error())
		return "", false
	}

	if strings.TrimSpace(req.Query) == "" {
		RespondValidationError(c)
		return "", false
	}

	log.Debug().
		Str("request_id", log.RequestID(c)).
		Str("query", req.Query).
		Msg("processing query")
	return req.Query, true
}

// analyze relays the bound query; it responds itself on failure.
func (h *Handlers) analyze(c *gin.Context) (json.RawMessage, bool) {
	query, ok := bindQuery(c)
	if !ok {
		return nil, false
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	raw, err := h.server.Relay().Analyze(ctx, query)
	if err != nil {
		RespondRelayError(c, err)
		return nil, false
	}
	return raw, true
}

// Analyze handles POST /api/analyze and returns the upstream body verbatim
func (h *Handlers) Analyze(c *gin.Context) {
	raw, ok := h.analyze(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// AnalyzeTranscript handles POST /api/analyze/transcript
func (h *Handlers) AnalyzeTranscript(c *gin.Context) {
	raw, ok := h.analyze(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newTranscriptResponse(raw))
}

// Render handles POST /api/render. Any body renders; there is no upstream call.
func (h *Handlers) Render(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBytes+1))
	if err != nil {
		RespondBadRequest(c, msgInvalidRequest, err.Error())
		return
	}
	if len(body) > maxRequestBytes {
		RespondPayloadTooLarge(c, maxRequestBytes)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		RespondBadRequest(c, "Request body is required", nil)
		return
	}

	c.JSON(http.StatusOK, newTranscriptResponse(body))
}
