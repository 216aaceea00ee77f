package render

import (
	"github.com/muurk/diskmgr/internal/table"
	"github.com/muurk/diskmgr/internal/terminal"
)

type options struct {
	maxWidth int
}

// Option configures rendering.
type Option func(*options)

// WithMaxWidth overrides DefaultMaxWidth.
func WithMaxWidth(n int) Option {
	return func(o *options) {
		o.maxWidth = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxWidth: DefaultMaxWidth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Display recomputes the widths of s and draws it on t.
func Display(t terminal.Terminal, s *table.Store, opts ...Option) error {
	s.CalculateWidths()
	return NewRenderer(t, s, opts...).Display()
}

// DisplayMenu numbers the records of s before drawing it, so each row can
// be picked by its "#" value.
func DisplayMenu(t terminal.Terminal, s *table.Store, opts ...Option) error {
	s.NumberRecords()
	return Display(t, s, opts...)
}
