package table

import (
	"fmt"
	"strings"
)

// Field is a single named cell of a record.
type Field struct {
	Name  string
	Value string
}

// Record is one row of tabular data. Field order is column order.
type Record []Field

// MustRecord builds a record from alternating name/value pairs. It panics
// when given an odd number of arguments, so it is meant for literals.
//
//	table.MustRecord("NAME", "sda", "SIZE", "8G")
func MustRecord(pairs ...string) Record {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("table: MustRecord called with %d arguments, want name/value pairs", len(pairs)))
	}
	rec := make(Record, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rec = append(rec, Field{Name: pairs[i], Value: pairs[i+1]})
	}
	return rec
}

// Get returns the value stored under name and whether it exists.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value stored under name, or "" when absent.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Columns returns the field names in order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}

// Clone returns a copy that shares no storage with r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// normalize upper-cases every field name.
func (r Record) normalize() Record {
	out := make(Record, len(r))
	for i, f := range r {
		out[i] = Field{Name: strings.ToUpper(f.Name), Value: f.Value}
	}
	return out
}

// String renders the record as NAME=value pairs.
func (r Record) String() string {
	parts := make([]string, len(r))
	for i, f := range r {
		parts[i] = fmt.Sprintf("%s=%q", f.Name, f.Value)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ParseError reports a malformed text table.
type ParseError struct {
	Line   int    // 1-based line number among the non-blank lines
	Column string // offending column label, if any
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("table: line %d: column %q: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("table: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
