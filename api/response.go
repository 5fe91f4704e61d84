package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stablescout/stablescout/relay"
)

// =============================================================================
// Standard API Response Types
// =============================================================================
//
// Errors share one envelope:
// {"error": "...", "code": "...", "message": "...", "details": ...}.
// "error" is the summary, "message" the one line shown to the user for that
// kind of failure, "details" whatever the failure knows (upstream message,
// upstream body).

// ErrorCode defines standard error codes for programmatic handling
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"       // 400 - Malformed request
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"  // 400 - Empty query
	ErrCodeTooLarge        ErrorCode = "PAYLOAD_TOO_LARGE" // 413 - Request body over limit
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS" // 429 - Rate limited

	// Server errors (5xx)
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"       // 500 - Unexpected error
	ErrCodeUpstreamError       ErrorCode = "UPSTREAM_ERROR"       // 502 - Upstream non-success status
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE" // 503 - Upstream unreachable
	ErrCodeUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"     // 504 - Upstream too slow
)

const (
	msgQueryRequired  = "Query is required"
	msgAnalyzeFailed  = "Failed to analyze query"
	msgInvalidRequest = "Invalid request body"
	msgEnterQuery     = "Please enter a query to analyze."
)

// ErrorResponse is the standard error response structure
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message,omitempty"`
	Details   any       `json:"details,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
}

// UpstreamErrorDetails describes a non-success upstream answer
type UpstreamErrorDetails struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
}

// -----------------------------------------------------------------------------
// Error Helpers
// -----------------------------------------------------------------------------

func respondError(c *gin.Context, status int, resp ErrorResponse) {
	c.AbortWithStatusJSON(status, resp)
}

// RespondBadRequest sends a 400 Bad Request error
func RespondBadRequest(c *gin.Context, message string, details any) {
	respondError(c, http.StatusBadRequest, ErrorResponse{Error: message, Code: ErrCodeBadRequest, Details: details})
}

// RespondValidationError sends a 400 for an empty query
func RespondValidationError(c *gin.Context) {
	respondError(c, http.StatusBadRequest, ErrorResponse{
		Error:   msgQueryRequired,
		Code:    ErrCodeValidation,
		Message: msgEnterQuery,
	})
}

// RespondPayloadTooLarge sends a 413 for a request body over limit bytes
func RespondPayloadTooLarge(c *gin.Context, limit int64) {
	respondError(c, http.StatusRequestEntityTooLarge, ErrorResponse{
		Error:   "Request body too large",
		Code:    ErrCodeTooLarge,
		Details: fmt.Sprintf("limit is %d bytes", limit),
	})
}

// RespondTooManyRequests sends a 429 Too Many Requests error
func RespondTooManyRequests(c *gin.Context) {
	respondError(c, http.StatusTooManyRequests, ErrorResponse{
		Error:     "Too many requests, slow down",
		Code:      ErrCodeTooManyRequests,
		Retryable: true,
	})
}

// RespondRelayError maps a relay failure onto a status and the error envelope
func RespondRelayError(c *gin.Context, err error) {
	_ = c.Error(err)

	re, ok := relay.AsError(err)
	if !ok {
		respondError(c, http.StatusInternalServerError, ErrorResponse{
			Error:   msgAnalyzeFailed,
			Code:    ErrCodeInternal,
			Details: err.Error(),
		})
		return
	}

	switch re.Kind {
	case relay.KindValidation:
		RespondValidationError(c)
	case relay.KindUpstreamUnavailable:
		status, code := http.StatusServiceUnavailable, ErrCodeUpstreamUnavailable
		if re.Timeout {
			status, code = http.StatusGatewayTimeout, ErrCodeUpstreamTimeout
		}
		respondError(c, status, ErrorResponse{
			Error:     msgAnalyzeFailed,
			Code:      code,
			Message:   re.UserMessage(),
			Details:   re.Message,
			Retryable: true,
		})
	default:
		respondError(c, http.StatusBadGateway, ErrorResponse{
			Error:   msgAnalyzeFailed,
			Code:    ErrCodeUpstreamError,
			Message: re.UserMessage(),
			Details: UpstreamErrorDetails{
				Status:  re.StatusCode,
				Message: re.Message,
				Body:    re.Detail,
			},
			Retryable: re.Retryable(),
		})
	}
}
