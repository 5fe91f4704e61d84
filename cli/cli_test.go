package cli

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stablescout/stablescout/relay"
	"github.com/stablescout/stablescout/render"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "disabled"))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func upstream(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestAsk_PrintsTranscript(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, `{"messages":[
		{"type":"human","content":"hi"},
		{"type":"ai","name":"yield_agent","content":"hello\u001b[2J","tool_calls":[{"name":"lookup_rate","args":{"asset":"USDC"}}]}
	]}`)

	out, _, err := run(t, "ask", "--upstream", srv.URL, "best", "yield")

	require.NoError(t, err)
	assert.Equal(t, "👤 User\nhi\n\n🤖 Yield Agent\nhello\n  🔧 Calling: lookup_rate\n  {\n    \"asset\": \"USDC\"\n  }\n", out)
}

func TestAsk_JSON(t *testing.T) {
	body := `{"response":"Try protocol X at 4.2% APY"}`
	srv, _ := upstream(t, http.StatusOK, body)

	out, _, err := run(t, "ask", "--json", "--upstream", srv.URL, "q")

	require.NoError(t, err)
	assert.Equal(t, body+"\n", out)
}

func TestAsk_EmptyQuery(t *testing.T) {
	srv, calls := upstream(t, http.StatusOK, `{}`)

	for _, args := range [][]string{{"ask"}, {"ask", "  ", "\t"}} {
		_, stderr, err := run(t, append(args, "--upstream", srv.URL)...)
		assert.ErrorIs(t, err, relay.ErrValidation)
		assert.Contains(t, stderr, "Please enter a query")
	}
	assert.Zero(t, calls.Load())
}

func TestAsk_UpstreamError(t *testing.T) {
	srv, _ := upstream(t, http.StatusBadGateway, `{"error":"engine offline"}`)

	out, stderr, err := run(t, "ask", "--upstream", srv.URL, "q")

	assert.ErrorIs(t, err, relay.ErrUpstream)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "engine offline")
	assert.Contains(t, stderr, "try again")
}

func TestHealth(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, `{"status":"healthy"}`)

	out, _, err := run(t, "health", "--upstream", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+srv.URL+" reachable (HTTP 200")
}

func TestHealth_Unreachable(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	_, stderr, err := run(t, "health", "--upstream", url)

	var re *relay.Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, relay.KindUpstreamUnavailable, re.Kind)
	assert.Contains(t, stderr, "is not healthy")
}

func TestPrinter_Transcript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	blocks := render.RenderWith([]byte(`{"unexpected":true}`), render.Terminal)
	require.NoError(t, p.Transcript(blocks))

	assert.Equal(t, "{\n  \"unexpected\": true\n}\n", buf.String())
	assert.False(t, p.color)
}
