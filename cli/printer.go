package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/stablescout/stablescout/render"
)

var (
	ColorSuccess = lipgloss.Color("35")  // Green
	ColorWarning = lipgloss.Color("214") // Gold/yellow
	ColorError   = lipgloss.Color("196") // Red
	ColorDim     = lipgloss.Color("241") // Gray
	ColorAccent  = lipgloss.Color("39")  // Blue
)

const (
	SymbolCheck = "✓"
	SymbolCross = "✗"
	SymbolWarn  = "!"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ToolCallStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ArgsStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorDim)
)

const toolIndent = "  "

// Printer writes terminal output, styled only when w is a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer for w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, color: colorEnabled(w)}
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Transcript prints blocks rendered with the terminal surface, separated by
// blank lines.
func (p *Printer) Transcript(blocks []render.Block) error {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		p.writeBlock(&sb, b)
	}
	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *Printer) writeBlock(sb *strings.Builder, b render.Block) {
	if b.HasHeader() {
		sb.WriteString(p.style(HeaderStyle, strings.TrimSpace(b.Icon+" "+b.Label)))
		sb.WriteString("\n")
	}
	if b.Content != "" {
		sb.WriteString(b.Content)
		sb.WriteString("\n")
	}
	for _, call := range b.ToolCalls {
		sb.WriteString(toolIndent)
		sb.WriteString(p.style(ToolCallStyle, render.IconWrench+" Calling: "+call.Name))
		sb.WriteString("\n")
		for _, line := range strings.Split(call.Arguments, "\n") {
			sb.WriteString(toolIndent)
			sb.WriteString(p.style(ArgsStyle, line))
			sb.WriteString("\n")
		}
	}
}

func (p *Printer) line(s lipgloss.Style, symbol, msg string) {
	fmt.Fprintln(p.w, p.style(s, symbol+" "+msg))
}

func (p *Printer) Success(msg string) { p.line(SuccessStyle, SymbolCheck, msg) }
func (p *Printer) Warning(msg string) { p.line(WarningStyle, SymbolWarn, msg) }
func (p *Printer) Error(msg string)   { p.line(ErrorStyle, SymbolCross, msg) }
func (p *Printer) Hint(msg string)    { fmt.Fprintln(p.w, p.style(HintStyle, msg)) }
