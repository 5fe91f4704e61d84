package render

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Kind is the classification of a rendered block.
type Kind string

const (
	KindUser       Kind = "user"
	KindAIAgent    Kind = "ai_agent"
	KindToolResult Kind = "tool_result"
	KindSystem     Kind = "system"
	KindGeneric    Kind = "generic"

	// Non-message blocks
	KindResponse Kind = "response"
	KindOpaque   Kind = "opaque"
)

const (
	IconUser   = "👤"
	IconRobot  = "🤖"
	IconWrench = "🔧"
	IconGear   = "⚙️"
	IconBubble = "💬"
	IconChart  = "📊"
	IconShield = "🛡️"
)

// Message is one decoded conversation turn.
type Message struct {
	Kind      Kind
	Name      string
	Content   json.RawMessage
	ToolCalls []ToolCall
}

type kindRule struct {
	kind  Kind
	label string
	icon  string
	match func(typ, role string) bool
}

// First match wins; anything unmatched is Generic.
var kindRules = []kindRule{
	{KindUser, "User", IconUser, func(typ, role string) bool { return typ == "human" || role == "user" }},
	{KindAIAgent, "AI Agent", IconRobot, func(typ, role string) bool { return typ == "ai" || role == "assistant" }},
	{KindToolResult, "Tool Result", IconWrench, func(typ, _ string) bool { return typ == "tool" }},
	{KindSystem, "System", IconGear, func(typ, _ string) bool { return typ == "system" }},
}

var genericRule = kindRule{KindGeneric, "Message", IconBubble, nil}

type iconRule struct {
	match func(label string) bool
	icon  string
}

// Applied in order to name-derived labels; the last match wins.
// Shield after chart only preserves the historical precedence.
var nameIconRules = []iconRule{
	{containsFold("analyst"), IconChart},
	{containsFold("risk"), IconShield},
}

func containsFold(substr string) func(string) bool {
	return func(label string) bool {
		return strings.Contains(strings.ToLower(label), substr)
	}
}

func classify(typ, role string) kindRule {
	for _, rule := range kindRules {
		if rule.match(typ, role) {
			return rule
		}
	}
	return genericRule
}

func ruleFor(kind Kind) kindRule {
	for _, rule := range kindRules {
		if rule.kind == kind {
			return rule
		}
	}
	return genericRule
}

// DecodeMessage reads a message from any JSON value. Values that are not
// objects decode to a Generic message whose content is the value itself.
func DecodeMessage(raw json.RawMessage) Message {
	obj, ok := asObject(raw)
	if !ok {
		return Message{Kind: KindGeneric, Content: raw}
	}

	typ, _ := stringField(obj, "type")
	role, _ := stringField(obj, "role")
	name, _ := stringField(obj, "name")

	return Message{
		Kind:      classify(typ, role).kind,
		Name:      name,
		Content:   obj["content"],
		ToolCalls: decodeToolCalls(obj),
	}
}

// labelAndIcon resolves the header for a message. A name replaces the
// kind label and may override the icon.
func labelAndIcon(m Message) (string, string) {
	rule := ruleFor(m.Kind)
	label, icon := rule.label, rule.icon

	if m.Name == "" {
		return label, icon
	}

	label = DisplayName(m.Name)
	for _, override := range nameIconRules {
		if override.match(label) {
			icon = override.icon
		}
	}
	return label, icon
}

// DisplayName turns an agent identifier such as "risk_analyst_agent" into
// "Risk Analyst Agent": underscores become spaces and every word starts
// upper-case. Other letters are left as they are.
func DisplayName(name string) string {
	runes := []rune(strings.ReplaceAll(name, "_", " "))
	prevWord := false
	for i, r := range runes {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !prevWord {
			runes[i] = unicode.ToUpper(r)
		}
		prevWord = word
	}
	return string(runes)
}
