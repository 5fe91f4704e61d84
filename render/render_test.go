package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PlainResponse(t *testing.T) {
	blocks := Render(json.RawMessage(`{"response": "Try protocol X at 4.2% APY"}`))

	require.Len(t, blocks, 1)
	assert.Equal(t, KindResponse, blocks[0].Kind)
	assert.Equal(t, "AI Response", blocks[0].Label)
	assert.Equal(t, IconRobot, blocks[0].Icon)
	assert.Equal(t, "Try protocol X at 4.2% APY", blocks[0].Content)
}

func TestRender_MessageList(t *testing.T) {
	raw := json.RawMessage(`{"messages": [
		{"type": "human", "content": "hi"},
		{"type": "ai", "name": "yield_agent", "content": "hello",
		 "tool_calls": [{"name": "lookup_rate", "args": {"asset": "USDC"}}]}
	]}`)

	blocks := RenderWith(raw, Terminal)
	require.Len(t, blocks, 2)

	assert.Equal(t, KindUser, blocks[0].Kind)
	assert.Equal(t, "User", blocks[0].Label)
	assert.Equal(t, IconUser, blocks[0].Icon)
	assert.Equal(t, "hi", blocks[0].Content)
	assert.Empty(t, blocks[0].ToolCalls)

	assert.Equal(t, KindAIAgent, blocks[1].Kind)
	assert.Equal(t, "Yield Agent", blocks[1].Label)
	assert.Equal(t, IconRobot, blocks[1].Icon)
	assert.Equal(t, "hello", blocks[1].Content)
	require.Len(t, blocks[1].ToolCalls, 1)
	assert.Equal(t, "lookup_rate", blocks[1].ToolCalls[0].Name)
	assert.Equal(t, "{\n  \"asset\": \"USDC\"\n}", blocks[1].ToolCalls[0].Arguments)
}

func TestRender_OneBlockPerMessageInOrder(t *testing.T) {
	var msgs []string
	for i := 0; i < 25; i++ {
		msgs = append(msgs, `{"type":"system","content":"m`+strings.Repeat("x", i)+`"}`)
	}
	raw := json.RawMessage(`{"messages":[` + strings.Join(msgs, ",") + `]}`)

	blocks := Render(raw)
	require.Len(t, blocks, 25)
	for i, b := range blocks {
		assert.Equal(t, "m"+strings.Repeat("x", i), b.Content)
		assert.Equal(t, "System", b.Label)
	}
}

func TestRender_Opaque(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"object without known fields", `{"b":1,"a":[true,null]}`, "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}"},
		{"top-level array", `[1,2]`, "[\n  1,\n  2\n]"},
		{"empty messages", `{"messages":[]}`, "{\n  \"messages\": []\n}"},
		{"messages not a sequence", `{"messages":"nope"}`, "{\n  \"messages\": \"nope\"\n}"},
		{"empty response", `{"response":""}`, "{\n  \"response\": \"\"\n}"},
		{"response not text", `{"response":42}`, "{\n  \"response\": 42\n}"},
		{"string", `"just text"`, `"just text"`},
		{"number", `3.14`, `3.14`},
		{"null", `null`, `null`},
		{"malformed", `{"messages": [`, `{"messages": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := RenderWith(json.RawMessage(tt.raw), Terminal)
			require.Len(t, blocks, 1)
			assert.Equal(t, KindOpaque, blocks[0].Kind)
			assert.False(t, blocks[0].HasHeader())
			assert.Equal(t, tt.want, blocks[0].Content)
		})
	}
}

func TestRender_MessagesWinOverResponse(t *testing.T) {
	blocks := Render(json.RawMessage(`{"response":"ignored","messages":[{"type":"ai","content":"x"}]}`))
	require.Len(t, blocks, 1)
	assert.Equal(t, KindAIAgent, blocks[0].Kind)
}

func TestRender_NeverEmpty(t *testing.T) {
	inputs := []string{``, `{}`, `[]`, `{"messages":[null]}`, `{"messages":[1,"two",[3]]}`, `garbage`}
	for _, in := range inputs {
		assert.NotEmpty(t, Render(json.RawMessage(in)), "input %q", in)
	}
}

func TestRender_NonObjectMessages(t *testing.T) {
	blocks := RenderWith(json.RawMessage(`{"messages":["plain", 7, {"content":"obj"}]}`), Terminal)
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, KindGeneric, b.Kind)
		assert.Equal(t, "Message", b.Label)
		assert.Equal(t, IconBubble, b.Icon)
	}
	assert.Equal(t, "plain", blocks[0].Content)
	assert.Equal(t, "7", blocks[1].Content)
	assert.Equal(t, "obj", blocks[2].Content)
}

func TestRender_EscapesScript(t *testing.T) {
	payload := `<script>alert("x")</script>`
	encoded, _ := json.Marshal(payload)
	inputs := []string{
		`{"response":` + string(encoded) + `}`,
		`{"messages":[{"type":"ai","content":` + string(encoded) + `}]}`,
		`{"messages":[{"type":"ai","content":[` + string(encoded) + `,{"type":"text","text":` + string(encoded) + `}]}]}`,
		`{"messages":[{"type":"ai","name":` + string(encoded) + `,"tool_calls":[{"name":` + string(encoded) + `,"args":{"q":` + string(encoded) + `}}]}]}`,
		`{"other":` + string(encoded) + `}`,
	}

	for _, in := range inputs {
		for _, b := range Render(json.RawMessage(in)) {
			fields := []string{b.Label, b.Content}
			for _, call := range b.ToolCalls {
				fields = append(fields, call.Name, call.Arguments)
			}
			for _, f := range fields {
				stripped := strings.ReplaceAll(f, "<br>", "")
				assert.NotContains(t, stripped, "<", "input %s", in)
				assert.NotContains(t, stripped, ">", "input %s", in)
			}
		}
	}
}

func TestRender_MultilineResponse(t *testing.T) {
	blocks := Render(json.RawMessage(`{"response":"line one\nline <two>\r\nthree"}`))
	require.Len(t, blocks, 1)
	assert.Equal(t, "line one<br>line &lt;two&gt;<br>three", blocks[0].Content)
}

func TestMessageBlock_SkipsEmptyContent(t *testing.T) {
	for _, content := range []string{`null`, `""`} {
		m := DecodeMessage(json.RawMessage(`{"type":"tool","content":` + content + `}`))
		b := MessageBlock(m, HTML)
		assert.Empty(t, b.Content)
		assert.Equal(t, "Tool Result", b.Label)
		assert.Equal(t, IconWrench, b.Icon)
	}
}

func TestDecode_Variants(t *testing.T) {
	tests := []struct {
		raw  string
		want Variant
	}{
		{`{"messages":[{}]}`, VariantMessageList},
		{`{"response":"ok"}`, VariantPlainResponse},
		{`{"query":"q","status":"success"}`, VariantOpaque},
		{`not json`, VariantOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			resp := Decode(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, resp.Variant)
			assert.Equal(t, tt.raw, string(resp.Raw))
		})
	}
}

func TestTranscriptHTML(t *testing.T) {
	raw := json.RawMessage(`{"messages":[{"type":"ai","name":"risk_analyst_agent","content":"a & b",
		"tool_calls":[{"function":{"name":"fetch","arguments":"{\"id\":1}"}}]}]}`)

	out := TranscriptHTML(Render(raw))

	assert.Contains(t, out, `<div class="message-block">`)
	assert.Contains(t, out, `<div class="message-header"><span>`+IconShield+`</span><span>Risk Analyst Agent</span></div>`)
	assert.Contains(t, out, `<div class="message-content">a &amp; b</div>`)
	assert.Contains(t, out, `<div class="tool-name">🔧 Calling: fetch</div>`)
	assert.Contains(t, out, `<div class="tool-args">{
  &#34;id&#34;: 1
}</div>`)
}

func TestBlockHTML_OpaqueHasNoHeader(t *testing.T) {
	out := Render(json.RawMessage(`{"x":1}`))[0].HTML()
	assert.NotContains(t, out, "message-header")
	assert.True(t, strings.HasPrefix(out, `<div class="message-block"><div class="message-content">`))
}

func TestMessageBlock_FalsyScalarContentRenders(t *testing.T) {
	tests := map[string]string{`0`: "0", `false`: "false"}
	for content, want := range tests {
		m := DecodeMessage(json.RawMessage(`{"type":"ai","content":` + content + `}`))
		assert.Equal(t, want, MessageBlock(m, HTML).Content, "content %s", content)
	}
}
