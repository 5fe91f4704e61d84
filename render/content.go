package render

import (
	"encoding/json"
	"strings"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// FormatContent formats a message content value for s. Text keeps its line
// breaks as s.LineBreak(); sequences put one line per element; objects are
// pretty-printed JSON. Every piece of upstream text passes through s.Escape.
func FormatContent(raw json.RawMessage, s Surface) string {
	switch leadingByte(raw) {
	case '"':
		text, ok := asString(raw)
		if !ok {
			break
		}
		return formatText(text, s)
	case '[':
		items, ok := asArray(raw)
		if !ok {
			break
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, formatItem(item, s))
		}
		return strings.Join(parts, s.LineBreak())
	case '{':
		return s.Escape(indentJSON(raw))
	case 0:
		return ""
	default:
		return s.Escape(scalarString(raw))
	}

	// Malformed JSON: show it as text
	return s.Escape(string(raw))
}

func formatText(text string, s Surface) string {
	escaped := s.Escape(newlines.Replace(text))
	return strings.ReplaceAll(escaped, "\n", s.LineBreak())
}

// formatItem formats one element of a content sequence.
func formatItem(raw json.RawMessage, s Surface) string {
	if text, ok := asString(raw); ok {
		return s.Escape(text)
	}

	if obj, ok := asObject(raw); ok {
		if typ, _ := stringField(obj, "type"); typ == "text" {
			textRaw, present := obj["text"]
			if !present || isAbsent(textRaw) {
				return ""
			}
			if _, isObject := asObject(textRaw); isObject {
				return s.Escape(compactJSON(textRaw))
			}
			if _, isArray := asArray(textRaw); isArray {
				return s.Escape(compactJSON(textRaw))
			}
			return s.Escape(scalarString(textRaw))
		}
	}

	return s.Escape(compactJSON(raw))
}
