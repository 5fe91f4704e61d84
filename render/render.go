// Package render turns an analysis response into a transcript of display
// blocks. Rendering never fails: anything that does not look like a message
// list or a plain response is shown as pretty-printed JSON.
package render

import (
	"bytes"
	"encoding/json"
)

// Variant is the decoded shape of an analysis response.
type Variant int

const (
	VariantOpaque Variant = iota
	VariantMessageList
	VariantPlainResponse
)

func (v Variant) String() string {
	switch v {
	case VariantMessageList:
		return "message_list"
	case VariantPlainResponse:
		return "plain_response"
	default:
		return "opaque"
	}
}

// PlainResponseLabel is the header of a plain text response block.
const PlainResponseLabel = "AI Response"

// Response is an analysis response decoded into exactly one variant.
type Response struct {
	Variant  Variant
	Messages []Message       // VariantMessageList
	Text     string          // VariantPlainResponse
	Raw      json.RawMessage // always set
}

// Decode classifies raw, trying a message list first, then a plain
// response, then falling back to opaque.
func Decode(raw json.RawMessage) Response {
	resp := Response{Variant: VariantOpaque, Raw: raw}

	obj, ok := asObject(raw)
	if !ok {
		return resp
	}

	if items, ok := asArray(obj["messages"]); ok && len(items) > 0 {
		resp.Variant = VariantMessageList
		resp.Messages = make([]Message, 0, len(items))
		for _, item := range items {
			resp.Messages = append(resp.Messages, DecodeMessage(item))
		}
		return resp
	}

	if text, ok := stringField(obj, "response"); ok {
		resp.Variant = VariantPlainResponse
		resp.Text = text
		return resp
	}

	return resp
}

// Render renders raw for the HTML surface.
func Render(raw json.RawMessage) []Block {
	return RenderWith(raw, HTML)
}

// RenderWith renders raw for surface s. The result always holds at least
// one block.
func RenderWith(raw json.RawMessage, s Surface) []Block {
	return Decode(raw).Blocks(s)
}

// Blocks renders the decoded response for surface s.
func (r Response) Blocks(s Surface) []Block {
	switch r.Variant {
	case VariantMessageList:
		blocks := make([]Block, 0, len(r.Messages))
		for _, m := range r.Messages {
			blocks = append(blocks, MessageBlock(m, s))
		}
		return blocks
	case VariantPlainResponse:
		return []Block{{
			Kind:    KindResponse,
			Label:   PlainResponseLabel,
			Icon:    IconRobot,
			Content: formatText(r.Text, s),
		}}
	default:
		return []Block{opaqueBlock(r.Raw, s)}
	}
}

// MessageBlock renders a single message.
func MessageBlock(m Message, s Surface) Block {
	label, icon := labelAndIcon(m)
	b := Block{
		Kind:  m.Kind,
		Label: s.Escape(label),
		Icon:  icon,
	}

	if !isAbsent(m.Content) {
		b.Content = FormatContent(m.Content, s)
	}

	for _, call := range m.ToolCalls {
		b.ToolCalls = append(b.ToolCalls, ToolCallBlock{
			Name:      s.Escape(call.Name),
			Arguments: s.Escape(indentJSON(call.Arguments)),
		})
	}
	return b
}

func opaqueBlock(raw json.RawMessage, s Surface) Block {
	var content string
	if json.Valid(raw) {
		content = indentJSON(raw)
	} else {
		content = string(bytes.TrimSpace(raw))
	}
	return Block{Kind: KindOpaque, Content: s.Escape(content)}
}
