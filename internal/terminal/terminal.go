package terminal

import (
	"errors"
	"fmt"
	"io"
)

// ErrInterrupted is returned by ReadKey when the user presses Ctrl-C or
// Ctrl-D while the terminal is in raw mode.
var ErrInterrupted = errors.New("terminal: interrupted")

// StyleKind names one entry of the fixed palette.
type StyleKind int

const (
	StylePlain   StyleKind = iota
	StyleBorder            // table borders
	StyleTitle             // table title, reverse video
	StyleHeading           // column headings, underlined
	StylePrompt            // questions
	StyleAlert             // validation failures
	StyleEcho              // characters typed into a line prompt
)

// String returns the lower-case name of the style.
func (k StyleKind) String() string {
	switch k {
	case StylePlain:
		return "plain"
	case StyleBorder:
		return "border"
	case StyleTitle:
		return "title"
	case StyleHeading:
		return "heading"
	case StylePrompt:
		return "prompt"
	case StyleAlert:
		return "alert"
	case StyleEcho:
		return "echo"
	default:
		return fmt.Sprintf("StyleKind(%d)", int(k))
	}
}

// Key is one keystroke. Multi-byte escape sequences (arrows, function keys)
// are reported as KeyEscape.
type Key rune

const (
	KeyBackspace Key = 8
	KeyEnter     Key = 10
	KeyEscape    Key = 27
	KeyDelete    Key = 127
)

// IsPrintable reports whether k is printable ASCII (codes 32 to 126).
func (k Key) IsPrintable() bool {
	return k >= 32 && k <= 126
}

// IsEnter reports whether k ends a line.
func (k Key) IsEnter() bool {
	return k == KeyEnter
}

// IsBackspace reports whether k erases the previous character.
func (k Key) IsBackspace() bool {
	return k == KeyBackspace || k == KeyDelete
}

// Terminal is the capability surface the renderer and prompts need. It is
// owned by a single goroutine; none of the methods are safe for concurrent
// use.
type Terminal interface {
	io.Writer

	// Width returns the current number of columns.
	Width() int

	// Style applies the palette entry kind to text.
	Style(kind StyleKind, text string) string

	// ReadKey blocks for a single keystroke. It is only meaningful inside
	// WithRawMode.
	ReadKey() (Key, error)

	// WithRawMode runs fn with unbuffered, non-echoing input and restores
	// the previous mode on every exit path. When hideCursor is set the
	// cursor is hidden for the duration.
	WithRawMode(hideCursor bool, fn func() error) error
}
