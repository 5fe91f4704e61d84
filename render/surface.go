package render

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Surface is the display target a transcript is rendered for.
// Escape must make arbitrary upstream text inert on that surface.
type Surface interface {
	Escape(text string) string
	LineBreak() string
}

var (
	// HTML renders fragments for insertion into a web page.
	HTML Surface = htmlSurface{}
	// Terminal renders fragments for printing to a terminal.
	Terminal Surface = terminalSurface{}
)

type htmlSurface struct{}

// Escape neutralises & < > " and '.
func (htmlSurface) Escape(text string) string { return html.EscapeString(text) }

func (htmlSurface) LineBreak() string { return "<br>" }

type terminalSurface struct{}

// ESC [ ... final byte, ESC ] ... BEL/ST, and two-byte ESC sequences
var ansiSequence = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b[@-Z\\-_]`)

// Escape strips terminal control sequences and control characters,
// keeping newlines and tabs.
func (terminalSurface) Escape(text string) string {
	text = ansiSequence.ReplaceAllString(text, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

func (terminalSurface) LineBreak() string { return "\n" }
