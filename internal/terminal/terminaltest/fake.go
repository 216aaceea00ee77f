// Package terminaltest provides a scripted terminal.Terminal for tests.
package terminaltest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/muurk/diskmgr/internal/terminal"
)

// Fake replays scripted keystrokes and records everything written to it.
type Fake struct {
	// W is the width reported by Width.
	W int
	// Styled makes Style wrap text in SGR sequences instead of returning
	// it unchanged.
	Styled bool
	// Out collects all output.
	Out bytes.Buffer

	keys []terminal.Key

	// RawEntries counts WithRawMode calls; HiddenEntries those that hid
	// the cursor.
	RawEntries    int
	HiddenEntries int
	inRaw         bool
}

// New returns a fake terminal of the given width.
func New(width int) *Fake {
	return &Fake{W: width}
}

// Type queues the runes of s as keystrokes.
func (f *Fake) Type(s string) *Fake {
	for _, r := range s {
		f.keys = append(f.keys, terminal.Key(r))
	}
	return f
}

// Press queues individual keys.
func (f *Fake) Press(keys ...terminal.Key) *Fake {
	f.keys = append(f.keys, keys...)
	return f
}

// Remaining returns the number of queued keys not read yet.
func (f *Fake) Remaining() int {
	return len(f.keys)
}

// InRawMode reports whether a WithRawMode call is in progress.
func (f *Fake) InRawMode() bool {
	return f.inRaw
}

// Output returns everything written so far.
func (f *Fake) Output() string {
	return f.Out.String()
}

func (f *Fake) Write(p []byte) (int, error) {
	return f.Out.Write(p)
}

func (f *Fake) Width() int {
	return f.W
}

var sgr = map[terminal.StyleKind]string{
	terminal.StyleBorder:  "34",
	terminal.StyleTitle:   "7",
	terminal.StyleHeading: "4",
	terminal.StylePrompt:  "33",
	terminal.StyleAlert:   "31",
	terminal.StyleEcho:    "32",
}

func (f *Fake) Style(kind terminal.StyleKind, text string) string {
	code, ok := sgr[kind]
	if !f.Styled || !ok {
		return text
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, text)
}

// ReadKey returns the next queued key, or io.EOF when none are left.
// Reading outside raw mode is a test failure waiting to happen, so it
// returns an error.
func (f *Fake) ReadKey() (terminal.Key, error) {
	if !f.inRaw {
		return 0, fmt.Errorf("terminaltest: ReadKey outside raw mode")
	}
	if len(f.keys) == 0 {
		return 0, io.EOF
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *Fake) WithRawMode(hideCursor bool, fn func() error) error {
	f.RawEntries++
	if hideCursor {
		f.HiddenEntries++
	}
	f.inRaw = true
	defer func() { f.inRaw = false }()
	return fn()
}

var _ terminal.Terminal = (*Fake)(nil)
