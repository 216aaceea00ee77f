package table

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// NumberColumn is the name of the column added by NumberRecords.
const NumberColumn = "#"

// columnGap is the number of spaces between two cells of a rendered row.
const columnGap = 2

// minColumnWidth is the floor ResizeColumns never shrinks a column below.
const minColumnWidth = 1

var (
	// ErrNoSource is returned when neither FromRecords nor FromText is given.
	ErrNoSource = errors.New("table: one of FromRecords or FromText is required")
	// ErrSourceConflict is returned when both FromRecords and FromText are given.
	ErrSourceConflict = errors.New("table: FromRecords and FromText are mutually exclusive")
	// ErrHeterogeneous is returned when records do not share one column set.
	ErrHeterogeneous = errors.New("table: records do not share the same columns")
	// ErrDuplicateColumn is returned when a column name appears twice.
	ErrDuplicateColumn = errors.New("table: duplicate column")
	// ErrRecordIndex is returned by Record for an out of range index.
	ErrRecordIndex = errors.New("table: record index out of range")
)

type options struct {
	records    []Record
	hasRecords bool
	text       string
	hasText    bool
	title      string
	rjust      []string
}

// Option configures a Store built by New.
type Option func(*options)

// FromRecords builds the store from literal records.
func FromRecords(records ...Record) Option {
	return func(o *options) {
		o.records = records
		o.hasRecords = true
	}
}

// FromText builds the store by parsing a whitespace-aligned text table.
func FromText(text string) Option {
	return func(o *options) {
		o.text = text
		o.hasText = true
	}
}

// WithTitle sets the table title. It is stored upper-cased.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithRightJustified marks columns whose values are right-aligned.
func WithRightJustified(columns ...string) Option {
	return func(o *options) {
		o.rjust = append(o.rjust, columns...)
	}
}

// Store is an ordered set of records sharing one column layout.
type Store struct {
	title          string
	columns        []string
	records        []Record
	rightJustified map[string]bool

	// widths is nil until computed; any mutation of records resets it.
	widths     map[string]int
	tableWidth int
}

// New creates a store from exactly one source option plus any number of
// formatting options.
func New(opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.hasRecords && o.hasText:
		return nil, ErrSourceConflict
	case !o.hasRecords && !o.hasText:
		return nil, ErrNoSource
	}

	var (
		columns    []string
		normalized []Record
		err        error
	)
	if o.hasText {
		var header []string
		var parsed []Record
		header, parsed, err = parse(o.text)
		if err != nil {
			return nil, err
		}
		columns, normalized, err = conform(header, parsed)
	} else {
		columns, normalized, err = conform(nil, o.records)
	}
	if err != nil {
		return nil, err
	}

	s := &Store{
		title:          strings.ToUpper(o.title),
		columns:        columns,
		records:        normalized,
		rightJustified: make(map[string]bool),
	}
	for _, col := range o.rjust {
		s.rightJustified[strings.ToUpper(col)] = true
	}
	return s, nil
}

// conform upper-cases every record and checks they all carry the same
// column set, reordering fields into column order. The column set is header
// when given, otherwise that of the first record.
func conform(header []string, records []Record) ([]string, []Record, error) {
	var columns []string
	switch {
	case header != nil:
		columns = make([]string, len(header))
		for i, col := range header {
			columns[i] = strings.ToUpper(col)
		}
	case len(records) > 0:
		columns = records[0].normalize().Columns()
	default:
		return nil, nil, nil
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := index[col]; dup {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col)
		}
		index[col] = i
	}

	out := make([]Record, len(records))
	for n, rec := range records {
		rec = rec.normalize()
		if len(rec) != len(columns) {
			return nil, nil, fmt.Errorf("%w: record %d has %d columns, want %d", ErrHeterogeneous, n, len(rec), len(columns))
		}
		ordered := make(Record, len(columns))
		seen := make([]bool, len(columns))
		for _, f := range rec {
			i, ok := index[f.Name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: record %d has unknown column %q", ErrHeterogeneous, n, f.Name)
			}
			if seen[i] {
				return nil, nil, fmt.Errorf("%w: %q in record %d", ErrDuplicateColumn, f.Name, n)
			}
			seen[i] = true
			ordered[i] = f
		}
		out[n] = ordered
	}
	return columns, out, nil
}

// Title returns the upper-cased title.
func (s *Store) Title() string {
	return s.title
}

// Columns returns the column names in display order.
func (s *Store) Columns() []string {
	cols := make([]string, len(s.columns))
	copy(cols, s.columns)
	return cols
}

// Headings returns a record mapping each column name to itself.
func (s *Store) Headings() Record {
	rec := make(Record, len(s.columns))
	for i, col := range s.columns {
		rec[i] = Field{Name: col, Value: col}
	}
	return rec
}

// Count returns the number of records.
func (s *Store) Count() int {
	return len(s.records)
}

// Record returns a copy of the i-th record.
func (s *Store) Record(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("%w: %d (count %d)", ErrRecordIndex, i, len(s.records))
	}
	return s.records[i].Clone(), nil
}

// Records returns copies of all records in order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Clone()
	}
	return out
}

// IsRightJustified reports whether values of column are right-aligned.
func (s *Store) IsRightJustified(column string) bool {
	return s.rightJustified[column]
}

// RightJustifiedColumns returns the right-justified column names, sorted.
func (s *Store) RightJustifiedColumns() []string {
	cols := make([]string, 0, len(s.rightJustified))
	for col := range s.rightJustified {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// FilterNonEmpty keeps records whose key value is non-blank. When key is not
// a column of the store every record is kept.
func (s *Store) FilterNonEmpty(key string) {
	s.filter(func(rec Record) bool {
		v, ok := rec.Get(key)
		return !ok || strings.TrimSpace(v) != ""
	})
}

// FilterStartsWith keeps records whose key value starts with prefix.
// Matching is case-sensitive; records without key are dropped.
func (s *Store) FilterStartsWith(key, prefix string) {
	s.filter(func(rec Record) bool {
		v, ok := rec.Get(key)
		return ok && strings.HasPrefix(v, prefix)
	})
}

func (s *Store) filter(keep func(Record) bool) {
	kept := s.records[:0]
	for _, rec := range s.records {
		if keep(rec) {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	s.widths = nil
}

// NumberRecords prepends a 1-based "#" column to every record and marks it
// right-justified. Calling it again renumbers instead of adding a column.
func (s *Store) NumberRecords() {
	numbered := len(s.columns) > 0 && s.columns[0] == NumberColumn
	if !numbered {
		s.columns = append([]string{NumberColumn}, s.columns...)
	}
	for i, rec := range s.records {
		n := Field{Name: NumberColumn, Value: strconv.Itoa(i + 1)}
		if numbered {
			rec[0] = n
			continue
		}
		s.records[i] = append(Record{n}, rec...)
	}
	s.rightJustified[NumberColumn] = true
	s.widths = nil
}

// CalculateWidths recomputes every column width as the widest of its heading
// and its values, then the table width.
func (s *Store) CalculateWidths() {
	s.widths = make(map[string]int, len(s.columns))
	for i, col := range s.columns {
		w := runewidth.StringWidth(col)
		for _, rec := range s.records {
			if vw := runewidth.StringWidth(rec[i].Value); vw > w {
				w = vw
			}
		}
		s.widths[col] = w
	}
	s.updateTableWidth()
}

func (s *Store) ensureWidths() {
	if s.widths == nil {
		s.CalculateWidths()
	}
}

func (s *Store) updateTableWidth() {
	total := 0
	for _, w := range s.widths {
		total += w
	}
	if n := len(s.columns); n > 1 {
		total += columnGap * (n - 1)
	}
	s.tableWidth = total
}

// ColumnWidths returns a copy of the current column widths.
func (s *Store) ColumnWidths() map[string]int {
	s.ensureWidths()
	out := make(map[string]int, len(s.widths))
	for col, w := range s.widths {
		out[col] = w
	}
	return out
}

// TableWidth returns the sum of the column widths plus the gaps between them.
func (s *Store) TableWidth() int {
	s.ensureWidths()
	return s.tableWidth
}

// ResizeColumns shrinks the table until TableWidth() <= limit. Each step
// takes one cell from the widest column, the leftmost one on ties. Columns
// never go below one cell, so a limit that cannot be met leaves every column
// at that floor.
func (s *Store) ResizeColumns(limit int) {
	s.ensureWidths()
	for s.tableWidth > limit {
		widest := ""
		for _, col := range s.columns {
			if widest == "" || s.widths[col] > s.widths[widest] {
				widest = col
			}
		}
		if widest == "" || s.widths[widest] <= minColumnWidth {
			return
		}
		s.widths[widest]--
		s.tableWidth--
	}
}
