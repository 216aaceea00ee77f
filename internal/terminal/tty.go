package terminal

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// DefaultWidth is reported when the output is not a terminal.
const DefaultWidth = 80

// Palette holds the lipgloss colors of the styled kinds. Values are any
// lipgloss.Color string: ANSI codes ("4") or hex ("#7D56F4").
type Palette struct {
	Border string
	Prompt string
	Alert  string
	Echo   string
}

// DefaultPalette is blue borders, yellow prompts, red alerts and green echo.
func DefaultPalette() Palette {
	return Palette{
		Border: "4",
		Prompt: "3",
		Alert:  "1",
		Echo:   "2",
	}
}

// TTY is a Terminal on a pair of files, normally os.Stdin and os.Stdout.
type TTY struct {
	in      *os.File
	out     io.Writer
	outFd   int
	styles  map[StyleKind]lipgloss.Style
	pending []byte
}

// NewTTY returns a terminal reading os.Stdin and writing os.Stdout.
func NewTTY(palette Palette) *TTY {
	return NewTTYFiles(os.Stdin, os.Stdout, palette)
}

// NewTTYFiles returns a terminal on the given files.
func NewTTYFiles(in, out *os.File, palette Palette) *TTY {
	return &TTY{
		in:     in,
		out:    out,
		outFd:  int(out.Fd()),
		styles: buildStyles(palette),
	}
}

func buildStyles(p Palette) map[StyleKind]lipgloss.Style {
	return map[StyleKind]lipgloss.Style{
		StyleBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Border)),
		StyleTitle:   lipgloss.NewStyle().Reverse(true),
		StyleHeading: lipgloss.NewStyle().Underline(true),
		StylePrompt:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Prompt)),
		StyleAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Alert)),
		StyleEcho:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Echo)),
	}
}

// Write writes to the output file.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Width returns the column count of the output, or DefaultWidth when it is
// not a terminal.
func (t *TTY) Width() int {
	width, _, err := term.GetSize(t.outFd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Style renders text with the palette entry for kind.
func (t *TTY) Style(kind StyleKind, text string) string {
	st, ok := t.styles[kind]
	if !ok || text == "" {
		return text
	}
	return st.Render(text)
}

// WithRawMode puts the input in raw mode for the duration of fn.
func (t *TTY) WithRawMode(hideCursor bool, fn func() error) error {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	if hideCursor {
		_, _ = io.WriteString(t.out, ansi.HideCursor)
		defer io.WriteString(t.out, ansi.ShowCursor)
	}

	return fn()
}

// ReadKey reads one keystroke. Carriage return is reported as KeyEnter,
// Ctrl-C and Ctrl-D as ErrInterrupted. Bytes typed ahead of time (a paste)
// are kept and returned by later calls.
func (t *TTY) ReadKey() (Key, error) {
	if len(t.pending) == 0 {
		buf := make([]byte, 64)
		n, err := t.in.Read(buf)
		if n == 0 {
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}
		t.pending = buf[:n]
	}

	b := t.pending[0]
	switch b {
	case 3, 4:
		t.pending = nil
		return 0, ErrInterrupted
	case '\r':
		t.pending = t.pending[1:]
		return KeyEnter, nil
	case 27:
		// The rest of this read is the escape sequence.
		t.pending = nil
		return KeyEscape, nil
	}

	r, size := utf8.DecodeRune(t.pending)
	t.pending = t.pending[size:]
	return Key(r), nil
}
