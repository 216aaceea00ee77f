package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/diskmgr/internal/terminal"
)

// WrapCentered word-wraps text to the display width and left-pads every line
// so it is centered on the terminal. Width is measured without escape
// sequences, so text may already carry styling.
func WrapCentered(text string, terminalWidth, maxWidth int) []string {
	layout := ComputeLayout(terminalWidth, maxWidth)
	wrapped := text
	if layout.DisplayWidth > 0 {
		wrapped = ansi.Wordwrap(text, layout.DisplayWidth, "")
	}

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		pad := layout.Margin
		if gap := layout.DisplayWidth - ansi.StringWidth(line); gap > 0 {
			pad += gap / 2
		}
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return lines
}

// Message writes text as a centered, wrapped, styled block. When inline is
// set the last line ends with a space instead of a newline, leaving the
// cursor after the text for the answer.
func Message(t terminal.Terminal, kind terminal.StyleKind, text string, inline bool, maxWidth int) error {
	lines := WrapCentered(text, t.Width(), maxWidth)

	var b strings.Builder
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		b.WriteString(line[:len(line)-len(trimmed)])
		b.WriteString(t.Style(kind, trimmed))
		if inline && i == len(lines)-1 {
			b.WriteString(" ")
		} else {
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(t, b.String())
	return err
}
