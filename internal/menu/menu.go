package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muurk/diskmgr/internal/logging"
	"github.com/muurk/diskmgr/internal/prompt"
	"github.com/muurk/diskmgr/internal/render"
	"github.com/muurk/diskmgr/internal/table"
	"github.com/muurk/diskmgr/internal/terminal"
)

// OptionColumn is the column used by FromOptions.
const OptionColumn = "OPTION"

// keystrokeLimit is the record count from which selection switches from a
// single key to a typed line.
const keystrokeLimit = 10

var (
	// ErrNoOptions is returned when there is nothing to choose from.
	ErrNoOptions = errors.New("menu: no options to choose from")
	// ErrNoStore is returned by New for a nil store.
	ErrNoStore = errors.New("menu: store is required")
	// ErrNoSelection is returned by Selection before Run succeeded.
	ErrNoSelection = errors.New("menu: nothing selected yet")
	// ErrUnknownColumn is returned by Selection for a column the store
	// does not have.
	ErrUnknownColumn = errors.New("menu: unknown column")
)

type options struct {
	cue      string
	maxWidth int
}

// Option configures a Menu.
type Option func(*options)

// WithCue replaces the default question.
func WithCue(cue string) Option {
	return func(o *options) {
		o.cue = cue
	}
}

// WithMaxWidth caps the width of the table and the prompt.
func WithMaxWidth(n int) Option {
	return func(o *options) {
		o.maxWidth = n
	}
}

// Menu is a numbered table followed by an integer prompt over [1, count].
type Menu struct {
	term     terminal.Terminal
	store    *table.Store
	prompt   *prompt.Prompt
	maxWidth int
	index    int
}

// New builds a menu over the records of store.
func New(t terminal.Terminal, store *table.Store, opts ...Option) (*Menu, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	count := store.Count()
	if count == 0 {
		return nil, ErrNoOptions
	}

	o := options{cue: fmt.Sprintf("Select an option [1-%d]", count)}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := prompt.New(t, prompt.Config{
		Cue:        o.cue,
		Keystroke:  count < keystrokeLimit,
		Validation: prompt.Integer{Range: prompt.Between(1, count)},
		MaxWidth:   o.maxWidth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create menu prompt: %w", err)
	}

	return &Menu{
		term:     t,
		store:    store,
		prompt:   p,
		maxWidth: o.maxWidth,
		index:    -1,
	}, nil
}

// FromOptions builds a menu from plain strings, one per row of an OPTION
// column.
func FromOptions(t terminal.Terminal, title string, choices []string, opts ...Option) (*Menu, error) {
	if len(choices) == 0 {
		return nil, ErrNoOptions
	}
	records := make([]table.Record, len(choices))
	for i, c := range choices {
		records[i] = table.Record{{Name: OptionColumn, Value: c}}
	}
	store, err := table.New(table.FromRecords(records...), table.WithTitle(title))
	if err != nil {
		return nil, err
	}
	return New(t, store, opts...)
}

// Store returns the table the menu draws.
func (m *Menu) Store() *table.Store {
	return m.store
}

// Run draws the numbered table and waits for a valid choice.
func (m *Menu) Run() error {
	if err := render.DisplayMenu(m.term, m.store, render.WithMaxWidth(m.maxWidth)); err != nil {
		return err
	}

	answer, err := m.prompt.Call()
	if err != nil {
		return err
	}
	m.index = answer.Number - 1

	rec, err := m.store.Record(m.index)
	if err != nil {
		return err
	}
	logging.LogSelection(m.store.Title(), m.index, summary(rec))
	return nil
}

// Index returns the zero-based index of the selected record, or -1 before
// Run has succeeded.
func (m *Menu) Index() int {
	return m.index
}

// Selection returns the key field of the selected record. Key is matched
// case-insensitively, like column names.
func (m *Menu) Selection(key string) (string, error) {
	if m.index < 0 {
		return "", ErrNoSelection
	}
	rec, err := m.store.Record(m.index)
	if err != nil {
		return "", err
	}
	v, ok := rec.Get(strings.ToUpper(key))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	return v, nil
}

// Record returns the whole selected record.
func (m *Menu) Record() (table.Record, error) {
	if m.index < 0 {
		return nil, ErrNoSelection
	}
	return m.store.Record(m.index)
}

// summary is the first value that is not the row number.
func summary(rec table.Record) string {
	for _, f := range rec {
		if f.Name != table.NumberColumn {
			return f.Value
		}
	}
	return ""
}
