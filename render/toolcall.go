package render

import (
	"encoding/json"
)

// UnknownTool is shown when a tool call carries no name.
const UnknownTool = "Unknown Tool"

// ToolCall is a tool invocation recorded on a message.
type ToolCall struct {
	Name      string
	Arguments json.RawMessage
}

// Field locations tried in order. Direct fields come first, then the
// OpenAI-style nested "function" object.
var (
	toolCallListPaths = [][]string{{"tool_calls"}, {"toolCalls"}}
	toolNamePaths     = [][]string{{"name"}, {"function", "name"}}
	toolArgsPaths     = [][]string{{"args"}, {"function", "arguments"}}
)

var emptyArguments = json.RawMessage(`{}`)

func decodeToolCalls(msg map[string]json.RawMessage) []ToolCall {
	raw, ok := firstPresent(msg, toolCallListPaths, isNonEmptyArray)
	if !ok {
		return nil
	}
	items, _ := asArray(raw)

	calls := make([]ToolCall, 0, len(items))
	for _, item := range items {
		calls = append(calls, DecodeToolCall(item))
	}
	return calls
}

// DecodeToolCall resolves name and arguments from either legacy layout.
// Missing values default to UnknownTool and {}.
func DecodeToolCall(raw json.RawMessage) ToolCall {
	call := ToolCall{Name: UnknownTool, Arguments: emptyArguments}

	obj, ok := asObject(raw)
	if !ok {
		return call
	}

	if nameRaw, ok := firstPresent(obj, toolNamePaths, isNonEmptyString); ok {
		call.Name, _ = asString(nameRaw)
	}

	if argsRaw, ok := firstPresent(obj, toolArgsPaths, isPresent); ok {
		call.Arguments = normalizeArguments(argsRaw)
	}

	return call
}

// firstPresent returns the value at the first path accepted by accept.
func firstPresent(obj map[string]json.RawMessage, paths [][]string, accept func(json.RawMessage) bool) (json.RawMessage, bool) {
	for _, path := range paths {
		if raw, ok := lookupPath(obj, path); ok && accept(raw) {
			return raw, true
		}
	}
	return nil, false
}

func isPresent(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return false
	}
	s, isString := asString(raw)
	return !isString || s != ""
}

func isNonEmptyString(raw json.RawMessage) bool {
	s, ok := asString(raw)
	return ok && s != ""
}

func isNonEmptyArray(raw json.RawMessage) bool {
	items, ok := asArray(raw)
	return ok && len(items) > 0
}

// normalizeArguments unwraps arguments sent as a JSON-encoded string,
// which is how function.arguments usually arrives.
func normalizeArguments(raw json.RawMessage) json.RawMessage {
	s, ok := asString(raw)
	if !ok {
		return raw
	}
	inner := json.RawMessage(s)
	if b := leadingByte(inner); (b == '{' || b == '[') && json.Valid(inner) {
		return inner
	}
	return raw
}
