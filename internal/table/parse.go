package table

import (
	"strings"
	"unicode"
)

// column is a header label and the rune offset it starts at.
type column struct {
	name string
	pos  int
}

// ParseText parses a whitespace-aligned text table into records. The first
// non-blank line is the header; blank lines are skipped. Column names keep
// the case they have in the header; New upper-cases them.
func ParseText(text string) ([]Record, error) {
	_, records, err := parse(text)
	return records, err
}

func parse(text string) ([]string, []Record, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, nil, nil
	}

	header := headerColumns(lines[0])
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		key := strings.ToUpper(col.name)
		if seen[key] {
			return nil, nil, &ParseError{Line: 1, Column: col.name, Err: ErrDuplicateColumn}
		}
		seen[key] = true
		names[i] = col.name
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		records = append(records, sliceLine([]rune(line), header))
	}
	return names, records, nil
}

// splitLines returns the non-blank lines of text without line terminators.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// headerColumns splits the header on whitespace runs and records the rune
// offset of each label.
func headerColumns(line string) []column {
	var cols []column
	runes := []rune(line)
	start := -1
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r) && start >= 0:
			cols = append(cols, column{name: string(runes[start:i]), pos: start})
			start = -1
		case !unicode.IsSpace(r) && start < 0:
			start = i
		}
	}
	if start >= 0 {
		cols = append(cols, column{name: string(runes[start:]), pos: start})
	}
	return cols
}

// sliceLine cuts one data line into cells. A cell ends where the next cell
// starts, so the widening of one column is the narrowing of its neighbour.
func sliceLine(line []rune, header []column) Record {
	starts := make([]int, len(header)+1)
	for i := range header {
		starts[i] = cellStart(line, header, i)
	}
	starts[len(header)] = len(line)

	rec := make(Record, len(header))
	for i, col := range header {
		start, end := starts[i], starts[i+1]
		if end < start {
			end = start
		}
		rec[i] = Field{Name: col.name, Value: strings.TrimSpace(string(line[start:end]))}
	}
	return rec
}

// cellStart finds where the content of column i begins in line.
//
// When the header position holds whitespace the cell starts at the first
// non-space before the next column position. When it holds text, the cell
// starts at the beginning of that word, which may lie left of the header
// label. A word that reaches back into the previous column position belongs
// to the previous column, and the cell starts after it instead.
func cellStart(line []rune, header []column, i int) int {
	n := len(line)
	pos := header[i].pos
	if pos >= n {
		return n
	}

	limit := n
	if i+1 < len(header) && header[i+1].pos < n {
		limit = header[i+1].pos
	}

	if unicode.IsSpace(line[pos]) {
		for pos < limit && unicode.IsSpace(line[pos]) {
			pos++
		}
		return pos
	}

	floor := 0
	if i > 0 {
		floor = header[i-1].pos + 1
	}
	start := pos
	for start > floor && !unicode.IsSpace(line[start-1]) {
		start--
	}
	if i == 0 || start > floor || unicode.IsSpace(line[start-1]) {
		return start
	}

	// The word straddles the previous column: skip past it.
	for pos < limit && !unicode.IsSpace(line[pos]) {
		pos++
	}
	for pos < limit && unicode.IsSpace(line[pos]) {
		pos++
	}
	return pos
}
