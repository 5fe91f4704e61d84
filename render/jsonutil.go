package render

import (
	"bytes"
	"encoding/json"
)

// Helpers operate on raw JSON so upstream key order survives pretty-printing.

func leadingByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// indentJSON pretty-prints with a stable 2-space indent.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if leadingByte(raw) != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if leadingByte(raw) != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func asString(raw json.RawMessage) (string, bool) {
	if leadingByte(raw) != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// stringField returns obj[key] when it is a non-empty string.
func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := asString(raw)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// lookupPath walks nested objects, e.g. ["function", "name"].
func lookupPath(obj map[string]json.RawMessage, path []string) (json.RawMessage, bool) {
	current := obj
	for i, key := range path {
		raw, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return raw, true
		}
		next, ok := asObject(raw)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// scalarString stringifies a JSON scalar the way it reads in the source.
func scalarString(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
