// Package relay forwards analysis queries to the upstream analysis service
// and maps its answers into a response or a structured *Error.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stablescout/stablescout/log"
)

const (
	// DefaultTimeout bounds a single analysis call
	DefaultTimeout = 60 * time.Second
	// DefaultHealthTimeout bounds a health ping
	DefaultHealthTimeout = 5 * time.Second

	analyzePath = "/api/analyze"
	healthPath  = "/api/health"

	// DefaultMaxBodyBytes bounds the upstream bodies we are willing to buffer
	DefaultMaxBodyBytes = 32 << 20
)

// Config holds relay client settings
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	HealthTimeout time.Duration

	// HTTPClient is optional; timeouts are enforced via context either way
	HTTPClient *http.Client
	Metrics    *Metrics

	// MaxBodyBytes caps upstream bodies; larger ones fail instead of being cut
	MaxBodyBytes int64
}

// Client relays queries to the upstream analysis service
type Client struct {
	baseURL       string
	timeout       time.Duration
	healthTimeout time.Duration
	httpClient    *http.Client
	metrics       *Metrics
	maxBodyBytes  int64
}

// AnalyzeRequest is the payload sent upstream
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// HealthStatus is the result of a successful upstream ping
type HealthStatus struct {
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"statusCode"`
	Latency    time.Duration `json:"-"`
	LatencyMs  int64         `json:"latencyMs"`

	// Body is the upstream health body when it was JSON
	Body any `json:"body,omitempty"`
}

type requestIDKey struct{}

// WithRequestID attaches a request ID that is forwarded upstream as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// New creates a relay client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = DefaultHealthTimeout
	}
	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		timeout:       timeout,
		healthTimeout: healthTimeout,
		httpClient:    httpClient,
		metrics:       cfg.Metrics,
		maxBodyBytes:  maxBodyBytes,
	}
}

// Target returns the configured upstream base URL
func (c *Client) Target() string {
	return c.baseURL
}

// Timeout returns the bound applied to analysis calls
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Analyze forwards query upstream and returns the upstream JSON body unmodified.
// Exactly one upstream attempt is made.
func (c *Client) Analyze(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, validationError()
	}

	start := time.Now()
	body, err := c.analyze(ctx, query)
	elapsed := time.Since(start)
	c.metrics.observe(operationAnalyze, err, elapsed)

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.
		Str("upstream", c.baseURL).
		Str("request_id", requestIDFrom(ctx)).
		Dur("latency", elapsed).
		Str("outcome", outcomeOf(err)).
		Msg("relay analyze")

	return body, err
}

func (c *Client) analyze(ctx context.Context, query string) (json.RawMessage, error) {
	payload, err := json.Marshal(AnalyzeRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPost, analyzePath, payload)
	if err != nil {
		return nil, unavailableError(err, isTimeout(ctx, err))
	}
	defer resp.Body.Close()

	body, err := c.readBody(ctx, resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, detail := parseErrorBody(body)
		return nil, upstreamError(resp.StatusCode, message, detail)
	}

	return asJSON(body), nil
}

// HealthCheck pings the upstream health endpoint. Callers should treat a
// failure as a warning only.
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	status, err := c.healthCheck(ctx)
	elapsed := time.Since(start)
	c.metrics.observe(operationHealth, err, elapsed)

	if status != nil {
		status.Latency = elapsed
		status.LatencyMs = elapsed.Milliseconds()
	}
	return status, err
}

func (c *Client) healthCheck(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, unavailableError(err, isTimeout(ctx, err))
	}
	defer resp.Body.Close()

	body, err := c.readBody(ctx, resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, detail := parseErrorBody(body)
		return nil, upstreamError(resp.StatusCode, message, detail)
	}

	status := &HealthStatus{Reachable: true, StatusCode: resp.StatusCode}
	var decoded any
	if json.Unmarshal(body, &decoded) == nil {
		status.Body = decoded
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) (*http.Response, error) {
	fullURL, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	return c.httpClient.Do(req)
}

// readBody buffers the whole body. A body over the limit is an error rather
// than a truncated value.
func (c *Client) readBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, unavailableError(err, isTimeout(ctx, err))
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, upstreamError(resp.StatusCode,
			fmt.Sprintf("response too large: exceeds %d bytes", c.maxBodyBytes), nil)
	}
	return body, nil
}

// parseErrorBody extracts {"error": "..."} from an upstream failure body.
// detail is the decoded body when it is JSON.
func parseErrorBody(body []byte) (message string, detail any) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		return "", nil
	}
	if obj, ok := detail.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok {
			message = msg
		}
	}
	return message, detail
}

// asJSON returns body untouched when it is valid JSON; anything else is
// carried as a JSON string so the renderer still receives a JSON value.
func asJSON(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	encoded, _ := json.Marshal(string(body))
	return json.RawMessage(encoded)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
