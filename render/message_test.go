package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMessage_Kind(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{`{"type":"human"}`, KindUser},
		{`{"role":"user"}`, KindUser},
		{`{"type":"ai"}`, KindAIAgent},
		{`{"role":"assistant"}`, KindAIAgent},
		{`{"type":"tool"}`, KindToolResult},
		{`{"type":"system"}`, KindSystem},
		{`{"type":"function"}`, KindGeneric},
		{`{"role":"system"}`, KindGeneric},
		{`{}`, KindGeneric},
		{`{"type":"human","role":"assistant"}`, KindUser},
		{`{"type":"tool","role":"assistant"}`, KindAIAgent},
		{`{"type":3}`, KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeMessage(json.RawMessage(tt.raw)).Kind)
		})
	}
}

func TestLabelAndIcon(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLabel string
		wantIcon  string
	}{
		{"user", `{"type":"human"}`, "User", IconUser},
		{"agent", `{"type":"ai"}`, "AI Agent", IconRobot},
		{"tool", `{"type":"tool"}`, "Tool Result", IconWrench},
		{"system", `{"type":"system"}`, "System", IconGear},
		{"generic", `{"type":"other"}`, "Message", IconBubble},
		{"name keeps kind icon", `{"type":"ai","name":"yield_agent"}`, "Yield Agent", IconRobot},
		{"analyst", `{"type":"ai","name":"market_analyst"}`, "Market Analyst", IconChart},
		{"risk", `{"type":"ai","name":"risk_agent"}`, "Risk Agent", IconShield},
		{"risk and analyst", `{"type":"ai","name":"risk_analyst_agent"}`, "Risk Analyst Agent", IconShield},
		{"analyst before risk", `{"type":"ai","name":"analyst_of_risk"}`, "Analyst Of Risk", IconShield},
		{"case-insensitive", `{"type":"tool","name":"ANALYST"}`, "ANALYST", IconChart},
		{"empty name ignored", `{"type":"tool","name":""}`, "Tool Result", IconWrench},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, icon := labelAndIcon(DecodeMessage(json.RawMessage(tt.raw)))
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantIcon, icon)
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"risk_analyst_agent": "Risk Analyst Agent",
		"yield_agent":        "Yield Agent",
		"supervisor":         "Supervisor",
		"already Spaced":     "Already Spaced",
		"__lead__":           "  Lead  ",
		"agent_2b":           "Agent 2b",
		"mixedCase_name":     "MixedCase Name",
		"élan_vital":         "Élan Vital",
		"":                   "",
	}

	for in, want := range tests {
		assert.Equal(t, want, DisplayName(in), "input %q", in)
	}
}
