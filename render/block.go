package render

import (
	"strings"
)

// Block is one self-contained unit of a rendered transcript.
// Every string field is already formatted for the surface it was rendered
// with and is safe to emit on that surface as-is.
type Block struct {
	Kind      Kind            `json:"kind"`
	Label     string          `json:"label,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	Content   string          `json:"content,omitempty"`
	ToolCalls []ToolCallBlock `json:"toolCalls,omitempty"`
}

// ToolCallBlock is the display form of a ToolCall.
type ToolCallBlock struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// HasHeader reports whether the block carries a label/icon header.
// Opaque fallback blocks do not.
func (b Block) HasHeader() bool {
	return b.Label != "" || b.Icon != ""
}

// HTML assembles the block's markup. The block must have been rendered
// with the HTML surface.
func (b Block) HTML() string {
	var sb strings.Builder
	b.writeHTML(&sb)
	return sb.String()
}

func (b Block) writeHTML(sb *strings.Builder) {
	sb.WriteString(`<div class="message-block">`)

	if b.HasHeader() {
		sb.WriteString(`<div class="message-header"><span>`)
		sb.WriteString(b.Icon)
		sb.WriteString(`</span><span>`)
		sb.WriteString(b.Label)
		sb.WriteString(`</span></div>`)
	}

	if b.Content != "" {
		sb.WriteString(`<div class="message-content">`)
		sb.WriteString(b.Content)
		sb.WriteString(`</div>`)
	}

	for _, call := range b.ToolCalls {
		sb.WriteString(`<div class="tool-call"><div class="tool-name">`)
		sb.WriteString(IconWrench)
		sb.WriteString(` Calling: `)
		sb.WriteString(call.Name)
		sb.WriteString(`</div><div class="tool-args">`)
		sb.WriteString(call.Arguments)
		sb.WriteString(`</div></div>`)
	}

	sb.WriteString(`</div>`)
}

// TranscriptHTML joins the markup of blocks rendered with the HTML surface.
func TranscriptHTML(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		b.writeHTML(&sb)
		sb.WriteString("\n")
	}
	return sb.String()
}
