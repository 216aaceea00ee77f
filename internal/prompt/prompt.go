package prompt

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/muurk/diskmgr/internal/logging"
	"github.com/muurk/diskmgr/internal/render"
	"github.com/muurk/diskmgr/internal/terminal"
)

var (
	// ErrNoTerminal is returned by New when no terminal is supplied.
	ErrNoTerminal = errors.New("prompt: terminal is required")
	// ErrEmptyCue is returned by New when the question is blank.
	ErrEmptyCue = errors.New("prompt: cue is required")
	// ErrInvalidRange is returned by New for a negative Below bound or a
	// Between pair whose low end exceeds its high end.
	ErrInvalidRange = errors.New("prompt: invalid integer range")
)

// Alerts shown when a response fails validation.
const (
	alertBool    = "Respond with 'y' or 'n'"
	alertNumber  = "Enter a valid number"
	alertRange   = "Response is out of range"
	alertBetween = "Enter a number between %d and %d"
)

var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// Answer is a validated response. Text always holds the response as typed
// (or the canonical number for Integer prompts); Yes and Number are only
// meaningful for Bool and Integer prompts respectively.
type Answer struct {
	Text   string
	Yes    bool
	Number int
}

// Validation decides whether a response is acceptable. The implementations
// are Bool and Integer; a nil Validation accepts any response.
type Validation interface {
	// check returns the answer for response, or a non-empty alert.
	check(response string) (Answer, string)
	verify() error
}

// Bool accepts y or n in either case.
type Bool struct{}

func (Bool) check(response string) (Answer, string) {
	switch strings.ToLower(response) {
	case "y":
		return Answer{Text: response, Yes: true}, ""
	case "n":
		return Answer{Text: response}, ""
	}
	return Answer{}, alertBool
}

func (Bool) verify() error { return nil }

// Integer accepts a decimal integer literal, optionally bounded by Range.
type Integer struct {
	Range Range
}

func (v Integer) check(response string) (Answer, string) {
	if !integerPattern.MatchString(response) {
		return Answer{}, alertNumber
	}
	n, err := strconv.Atoi(response)
	if err != nil {
		// Matches the pattern but overflows int.
		return Answer{}, alertNumber
	}
	if alert := v.Range.check(n); alert != "" {
		return Answer{}, alert
	}
	return Answer{Text: strconv.Itoa(n), Number: n}, ""
}

func (v Integer) verify() error {
	return v.Range.verify()
}

type rangeKind int

const (
	rangeNone rangeKind = iota
	rangeBelow
	rangeBetween
)

// Range bounds an Integer prompt. The zero value is unbounded.
type Range struct {
	kind   rangeKind
	lo, hi int
}

// Below accepts 0 <= n < limit.
func Below(limit int) Range {
	return Range{kind: rangeBelow, hi: limit}
}

// Between accepts lo <= n <= hi.
func Between(lo, hi int) Range {
	return Range{kind: rangeBetween, lo: lo, hi: hi}
}

func (r Range) check(n int) string {
	switch r.kind {
	case rangeBelow:
		if n < 0 || n >= r.hi {
			return alertRange
		}
	case rangeBetween:
		if n < r.lo || n > r.hi {
			return fmt.Sprintf(alertBetween, r.lo, r.hi)
		}
	}
	return ""
}

func (r Range) verify() error {
	switch r.kind {
	case rangeBelow:
		if r.hi < 0 {
			return fmt.Errorf("%w: Below(%d) needs a non-negative limit", ErrInvalidRange, r.hi)
		}
	case rangeBetween:
		if r.lo > r.hi {
			return fmt.Errorf("%w: Between(%d, %d) has low > high", ErrInvalidRange, r.lo, r.hi)
		}
	}
	return nil
}

// String describes the range, e.g. "[1, 7]".
func (r Range) String() string {
	switch r.kind {
	case rangeBelow:
		return fmt.Sprintf("[0, %d)", r.hi)
	case rangeBetween:
		return fmt.Sprintf("[%d, %d]", r.lo, r.hi)
	default:
		return "unbounded"
	}
}

// Config describes one question.
type Config struct {
	// Cue is the question shown to the user.
	Cue string
	// Keystroke answers with a single key instead of a line of text.
	Keystroke bool
	// Validation restricts acceptable responses. Nil accepts anything.
	Validation Validation
	// MaxWidth caps the message width; zero means render.DefaultMaxWidth.
	MaxWidth int
}

// Prompt asks a question until it gets an acceptable answer.
type Prompt struct {
	term terminal.Terminal
	cfg  Config
}

// New checks cfg and returns a prompt bound to t.
func New(t terminal.Terminal, cfg Config) (*Prompt, error) {
	if t == nil {
		return nil, ErrNoTerminal
	}
	if strings.TrimSpace(cfg.Cue) == "" {
		return nil, ErrEmptyCue
	}
	if cfg.Validation != nil {
		if err := cfg.Validation.verify(); err != nil {
			return nil, err
		}
	}
	return &Prompt{term: t, cfg: cfg}, nil
}

// Call shows the cue, reads a response and validates it, repeating with an
// alert until the response is acceptable. Only terminal errors are returned.
func (p *Prompt) Call() (Answer, error) {
	for {
		response, err := p.getResponse()
		if err != nil {
			return Answer{}, err
		}

		answer, alert := p.validate(response)
		if alert == "" {
			return answer, nil
		}

		logging.LogRejectedResponse(p.cfg.Cue, response, alert)
		if err := render.Message(p.term, terminal.StyleAlert, alert, false, p.cfg.MaxWidth); err != nil {
			return Answer{}, err
		}
	}
}

func (p *Prompt) validate(response string) (Answer, string) {
	if p.cfg.Validation == nil {
		return Answer{Text: response}, ""
	}
	return p.cfg.Validation.check(response)
}

// getResponse shows the cue and reads the answer. Keystroke prompts leave
// the cursor on the next line; line prompts keep it after the cue.
func (p *Prompt) getResponse() (string, error) {
	inline := !p.cfg.Keystroke
	if err := render.Message(p.term, terminal.StylePrompt, p.cfg.Cue, inline, p.cfg.MaxWidth); err != nil {
		return "", err
	}
	if p.cfg.Keystroke {
		return p.readKeystroke()
	}
	return p.readString()
}

// readKeystroke waits for a printable key or Enter. Enter yields "".
func (p *Prompt) readKeystroke() (string, error) {
	var response string
	err := p.term.WithRawMode(true, func() error {
		for {
			k, err := p.term.ReadKey()
			if err != nil {
				return err
			}
			switch {
			case k.IsEnter():
				response = ""
				return nil
			case k.IsPrintable():
				response = string(rune(k))
				return nil
			}
		}
	})
	return response, err
}

// readString reads a line, echoing printable keys and honoring backspace.
func (p *Prompt) readString() (string, error) {
	var buf []rune
	err := p.term.WithRawMode(false, func() error {
		for {
			k, err := p.term.ReadKey()
			if err != nil {
				return err
			}
			switch {
			case k.IsEnter():
				return nil
			case k.IsBackspace():
				if len(buf) == 0 {
					continue
				}
				buf = buf[:len(buf)-1]
				if _, err := io.WriteString(p.term, "\b \b"); err != nil {
					return err
				}
			case k.IsPrintable():
				buf = append(buf, rune(k))
				if _, err := io.WriteString(p.term, p.term.Style(terminal.StyleEcho, string(rune(k)))); err != nil {
					return err
				}
			}
		}
	})
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(p.term, "\n"); err != nil {
		return "", err
	}
	return string(buf), nil
}
