package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeToolCall(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantArgs string
	}{
		{"direct fields", `{"name":"lookup_rate","args":{"asset":"USDC"}}`, "lookup_rate", `{"asset":"USDC"}`},
		{"function fields", `{"function":{"name":"fetch","arguments":{"id":1}}}`, "fetch", `{"id":1}`},
		{"function arguments as string", `{"function":{"name":"fetch","arguments":"{\"id\":1}"}}`, "fetch", `{"id":1}`},
		{"direct name wins", `{"name":"direct","function":{"name":"nested"}}`, "direct", `{}`},
		{"direct args win", `{"args":{"a":1},"function":{"arguments":{"b":2}}}`, UnknownTool, `{"a":1}`},
		{"empty name falls back", `{"name":"","function":{"name":"nested"}}`, "nested", `{}`},
		{"non-text name falls back", `{"name":5,"function":{"name":"nested"}}`, "nested", `{}`},
		{"null args fall back", `{"args":null,"function":{"arguments":{"b":2}}}`, UnknownTool, `{"b":2}`},
		{"neither", `{"id":"call_1"}`, UnknownTool, `{}`},
		{"not an object", `"lookup"`, UnknownTool, `{}`},
		{"plain string args kept", `{"args":"raw text"}`, UnknownTool, `"raw text"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := DecodeToolCall(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantName, call.Name)
			assert.JSONEq(t, tt.wantArgs, string(call.Arguments))
		})
	}
}

func TestDecodeToolCalls_ListLocations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"snake case", `{"tool_calls":[{"name":"a"},{"name":"b"}]}`, []string{"a", "b"}},
		{"camel case", `{"toolCalls":[{"name":"c"}]}`, []string{"c"}},
		{"empty snake falls back", `{"tool_calls":[],"toolCalls":[{"name":"d"}]}`, []string{"d"}},
		{"missing", `{"content":"x"}`, nil},
		{"not a sequence", `{"tool_calls":{"name":"e"}}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DecodeMessage(json.RawMessage(tt.raw))
			var names []string
			for _, call := range m.ToolCalls {
				names = append(names, call.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
