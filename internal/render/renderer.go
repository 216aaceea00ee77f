package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/muurk/diskmgr/internal/logging"
	"github.com/muurk/diskmgr/internal/table"
	"github.com/muurk/diskmgr/internal/terminal"
	"go.uber.org/zap"
)

// ErrRowIndex is returned when a record row is drawn without a record index.
var ErrRowIndex = errors.New("render: record row requires an index")

// Source is the read side of a table store plus the one mutation layout
// needs. *table.Store implements it.
type Source interface {
	Title() string
	Headings() table.Record
	Record(i int) (table.Record, error)
	Count() int
	ColumnWidths() map[string]int
	TableWidth() int
	IsRightJustified(column string) bool
	ResizeColumns(limit int)
}

type rowKind int

const (
	rowTop rowKind = iota
	rowTitle
	rowInner
	rowHeadings
	rowRecord
	rowBottom
)

// noIndex marks a row that is not a record.
const noIndex = -1

type borderGlyphs struct {
	left, fill, right string
}

var borders = map[rowKind]borderGlyphs{
	rowTop:    {"╔", "═", "╗"},
	rowInner:  {"╟", "─", "╢"},
	rowBottom: {"╚", "═", "╝"},
}

const (
	textEdge = "║"
	cellGap  = "  "
	padding  = " "
)

// Renderer draws one Source as a bordered table.
type Renderer struct {
	term     terminal.Terminal
	src      Source
	maxWidth int

	layout     Layout
	tableWidth int
	widths     map[string]int
}

// NewRenderer returns a renderer drawing src on t.
func NewRenderer(t terminal.Terminal, src Source, opts ...Option) *Renderer {
	o := buildOptions(opts)
	return &Renderer{term: t, src: src, maxWidth: o.maxWidth}
}

// SetDimensions fits the table to the terminal, shrinking columns when the
// table is wider than the space between the borders.
func (r *Renderer) SetDimensions() {
	r.layout = ComputeLayout(r.term.Width(), r.maxWidth)
	r.tableWidth = r.src.TableWidth()
	if r.tableWidth > r.layout.TableSpace {
		logging.Debug("resizing table columns",
			zap.Int("table_width", r.tableWidth),
			zap.Int("table_space", r.layout.TableSpace),
		)
		r.src.ResizeColumns(r.layout.TableSpace)
		r.tableWidth = r.src.TableWidth()
	}
	r.widths = r.src.ColumnWidths()
}

// Display fits and draws the whole table.
func (r *Renderer) Display() error {
	r.SetDimensions()
	return r.drawTable(r.src.Count())
}

// drawTable writes top, title, inner, headings, count records and bottom.
func (r *Renderer) drawTable(count int) error {
	for _, kind := range []rowKind{rowTop, rowTitle, rowInner, rowHeadings} {
		if err := r.drawRow(kind, noIndex); err != nil {
			return err
		}
	}
	for i := 0; i < count; i++ {
		if err := r.drawRow(rowRecord, i); err != nil {
			return err
		}
	}
	return r.drawRow(rowBottom, noIndex)
}

func (r *Renderer) drawRow(kind rowKind, index int) error {
	var line string
	switch kind {
	case rowTop, rowInner, rowBottom:
		line = r.borderRow(borders[kind])
	case rowTitle:
		title := center(r.src.Title(), r.tableWidth)
		line = r.textRow(r.term.Style(terminal.StyleTitle, title))
	case rowHeadings:
		line = r.textRow(r.cells(r.src.Headings(), true)...)
	case rowRecord:
		if index < 0 {
			return ErrRowIndex
		}
		rec, err := r.src.Record(index)
		if err != nil {
			return fmt.Errorf("draw record row: %w", err)
		}
		line = r.textRow(r.cells(rec, false)...)
	default:
		return fmt.Errorf("render: unknown row kind %d", kind)
	}
	_, err := io.WriteString(r.term, line+"\n")
	return err
}

func (r *Renderer) borderRow(g borderGlyphs) string {
	border := g.left + strings.Repeat(g.fill, r.tableWidth+2) + g.right
	return r.margin() + r.term.Style(terminal.StyleBorder, border)
}

func (r *Renderer) textRow(cells ...string) string {
	edge := r.term.Style(terminal.StyleBorder, textEdge)
	return r.margin() + edge + padding + strings.Join(cells, cellGap) + padding + edge
}

func (r *Renderer) margin() string {
	return strings.Repeat(" ", r.layout.Margin)
}

// cells formats every field of rec to its column width. Headings are
// centered and underlined; values are right- or left-aligned.
func (r *Renderer) cells(rec table.Record, headings bool) []string {
	out := make([]string, len(rec))
	for i, f := range rec {
		width := r.widths[f.Name]
		switch {
		case headings:
			out[i] = r.term.Style(terminal.StyleHeading, center(f.Value, width))
		case r.src.IsRightJustified(f.Name):
			out[i] = runewidth.FillLeft(fit(f.Value, width), width)
		default:
			out[i] = runewidth.FillRight(fit(f.Value, width), width)
		}
	}
	return out
}

// fit truncates s to at most width cells.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

// center pads s on both sides to exactly width cells, the odd space going
// to the right.
func center(s string, width int) string {
	s = fit(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
