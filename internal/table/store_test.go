package table

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSourceOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"neither source", []Option{WithTitle("x")}, ErrNoSource},
		{"both sources", []Option{FromText("A\n1\n"), FromRecords(MustRecord("A", "1"))}, ErrSourceConflict},
		{"records only", []Option{FromRecords(MustRecord("A", "1"))}, nil},
		{"text only", []Option{FromText("A\n1\n")}, nil},
		{"empty text", []Option{FromText("")}, nil},
		{"no records", []Option{FromRecords()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewNormalizesCase(t *testing.T) {
	s, err := New(
		FromRecords(MustRecord("name", "sda", "Size", "8G")),
		WithTitle("block devices"),
		WithRightJustified("size"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.Title() != "BLOCK DEVICES" {
		t.Errorf("Title() = %q, want %q", s.Title(), "BLOCK DEVICES")
	}
	if got := strings.Join(s.Columns(), ","); got != "NAME,SIZE" {
		t.Errorf("Columns() = %q, want %q", got, "NAME,SIZE")
	}
	if !s.IsRightJustified("SIZE") {
		t.Error("SIZE should be right-justified")
	}

	rec, err := s.Record(0)
	if err != nil {
		t.Fatalf("Record(0) error = %v", err)
	}
	if rec.Value("NAME") != "sda" {
		t.Errorf("Record(0).Value(NAME) = %q, want sda", rec.Value("NAME"))
	}
}

func TestNewReordersAndRejectsHeterogeneousRecords(t *testing.T) {
	s, err := New(FromRecords(
		MustRecord("NAME", "sda", "SIZE", "8G"),
		MustRecord("SIZE", "4G", "NAME", "sdb"),
	))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rec, _ := s.Record(1)
	if got := strings.Join(rec.Columns(), ","); got != "NAME,SIZE" {
		t.Errorf("Record(1) columns = %q, want NAME,SIZE", got)
	}

	_, err = New(FromRecords(
		MustRecord("NAME", "sda", "SIZE", "8G"),
		MustRecord("NAME", "sdb", "TYPE", "disk"),
	))
	if !errors.Is(err, ErrHeterogeneous) {
		t.Errorf("New() error = %v, want ErrHeterogeneous", err)
	}

	_, err = New(FromRecords(MustRecord("NAME", "sda", "name", "sdb")))
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("New() error = %v, want ErrDuplicateColumn", err)
	}
}

func TestEndToEndParse(t *testing.T) {
	s, err := New(FromText("Name Age\nJohn 25\nJane 30\n"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	assertRecords(t, s.Records(), []Record{
		MustRecord("NAME", "John", "AGE", "25"),
		MustRecord("NAME", "Jane", "AGE", "30"),
	})
}

func TestHeaderOnlyTextKeepsColumns(t *testing.T) {
	s, err := New(FromText("NAME SIZE\n"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
	if got := s.Headings().String(); got != `{NAME="NAME" SIZE="SIZE"}` {
		t.Errorf("Headings() = %s", got)
	}
}

func TestRecordIndex(t *testing.T) {
	s, _ := New(FromRecords(MustRecord("A", "1")))
	for _, i := range []int{-1, 1, 5} {
		if _, err := s.Record(i); !errors.Is(err, ErrRecordIndex) {
			t.Errorf("Record(%d) error = %v, want ErrRecordIndex", i, err)
		}
	}
}

func TestRecordReturnsCopy(t *testing.T) {
	s, _ := New(FromRecords(MustRecord("A", "1")))
	rec, _ := s.Record(0)
	rec[0].Value = "changed"

	again, _ := s.Record(0)
	if again.Value("A") != "1" {
		t.Errorf("store mutated through returned record: %v", again)
	}
}

func TestFilterStartsWith(t *testing.T) {
	s, _ := New(FromRecords(MustRecord("NAME", "sda"), MustRecord("NAME", "hda")))
	s.FilterStartsWith("NAME", "sd")

	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	assertRecords(t, s.Records(), []Record{MustRecord("NAME", "sda")})

	s.FilterStartsWith("MISSING", "")
	if s.Count() != 0 {
		t.Errorf("FilterStartsWith on absent key kept %d records, want 0", s.Count())
	}
}

func TestFilterNonEmpty(t *testing.T) {
	s, _ := New(FromRecords(
		MustRecord("NAME", "sda1", "MOUNTPOINT", "/boot"),
		MustRecord("NAME", "sda2", "MOUNTPOINT", "   "),
		MustRecord("NAME", "sda3", "MOUNTPOINT", ""),
	))

	s.FilterNonEmpty("MISSING")
	if s.Count() != 3 {
		t.Fatalf("FilterNonEmpty on absent key kept %d records, want 3", s.Count())
	}

	s.FilterNonEmpty("MOUNTPOINT")
	assertRecords(t, s.Records(), []Record{MustRecord("NAME", "sda1", "MOUNTPOINT", "/boot")})
}

func TestNumberRecords(t *testing.T) {
	s, _ := New(FromRecords(
		MustRecord("NAME", "sda"),
		MustRecord("NAME", "sdb"),
		MustRecord("NAME", "sdc"),
	))
	s.NumberRecords()

	for i, want := range []string{"1", "2", "3"} {
		rec, _ := s.Record(i)
		if rec[0].Name != NumberColumn || rec[0].Value != want {
			t.Errorf("Record(%d)[0] = %+v, want # = %s", i, rec[0], want)
		}
	}
	if !s.IsRightJustified(NumberColumn) {
		t.Error("# should be right-justified")
	}
	if got := strings.Join(s.RightJustifiedColumns(), ","); got != "#" {
		t.Errorf("RightJustifiedColumns() = %q, want #", got)
	}

	s.FilterStartsWith("NAME", "sdb")
	s.NumberRecords()
	if got := strings.Join(s.Columns(), ","); got != "#,NAME" {
		t.Errorf("Columns() after renumbering = %q, want #,NAME", got)
	}
	rec, _ := s.Record(0)
	if rec.Value(NumberColumn) != "1" {
		t.Errorf("renumbered # = %q, want 1", rec.Value(NumberColumn))
	}

	sized, _ := New(FromRecords(MustRecord("NAME", "sda", "SIZE", "8G")), WithRightJustified("size"))
	sized.NumberRecords()
	if got := strings.Join(sized.RightJustifiedColumns(), ","); got != "#,SIZE" {
		t.Errorf("RightJustifiedColumns() = %q, want #,SIZE", got)
	}
}

func TestCalculateWidths(t *testing.T) {
	s, _ := New(FromText(lsblkOutput))
	s.CalculateWidths()

	widths := s.ColumnWidths()
	for _, col := range s.Columns() {
		if widths[col] < len(col) {
			t.Errorf("width[%s] = %d, shorter than heading", col, widths[col])
		}
		for _, rec := range s.Records() {
			if widths[col] < len([]rune(rec.Value(col))) {
				t.Errorf("width[%s] = %d, shorter than value %q", col, widths[col], rec.Value(col))
			}
		}
	}

	if widths["NAME"] != 6 {
		t.Errorf("width[NAME] = %d, want 6 (tree glyphs are one cell each)", widths["NAME"])
	}
	if widths["MOUNTPOINT"] != 10 {
		t.Errorf("width[MOUNTPOINT] = %d, want 10", widths["MOUNTPOINT"])
	}

	sum := 0
	for _, w := range widths {
		sum += w
	}
	if want := sum + 2*(len(widths)-1); s.TableWidth() != want {
		t.Errorf("TableWidth() = %d, want %d", s.TableWidth(), want)
	}
}

func TestResizeColumns(t *testing.T) {
	s, _ := New(FromRecords(MustRecord("A", strings.Repeat("a", 10), "B", strings.Repeat("b", 6))))
	if s.TableWidth() != 18 {
		t.Fatalf("TableWidth() = %d, want 18", s.TableWidth())
	}
	before := s.ColumnWidths()

	s.ResizeColumns(12)

	if s.TableWidth() != 12 {
		t.Errorf("TableWidth() = %d, want 12", s.TableWidth())
	}
	after := s.ColumnWidths()
	if after["A"] != 5 || after["B"] != 5 {
		t.Errorf("widths = %v, want A=5 B=5", after)
	}
	for col, w := range after {
		if w > before[col] {
			t.Errorf("width[%s] grew from %d to %d", col, before[col], w)
		}
	}
}

func TestResizeColumnsNoOpAndFloor(t *testing.T) {
	s, _ := New(FromRecords(MustRecord("A", "aaaa", "B", "bb")))

	s.ResizeColumns(100)
	if s.TableWidth() != 8 {
		t.Errorf("TableWidth() = %d, want 8 when limit is not exceeded", s.TableWidth())
	}

	s.ResizeColumns(0)
	widths := s.ColumnWidths()
	if widths["A"] != 1 || widths["B"] != 1 {
		t.Errorf("widths = %v, want both at the floor of 1", widths)
	}
	if s.TableWidth() != 4 {
		t.Errorf("TableWidth() = %d, want 4", s.TableWidth())
	}
}

func TestFilterResetsWidths(t *testing.T) {
	s, _ := New(FromRecords(MustRecord("NAME", "a"), MustRecord("NAME", "longer-name")))
	if s.ColumnWidths()["NAME"] != 11 {
		t.Fatalf("width[NAME] = %d, want 11", s.ColumnWidths()["NAME"])
	}
	s.FilterStartsWith("NAME", "a")
	if s.ColumnWidths()["NAME"] != 4 {
		t.Errorf("width[NAME] after filter = %d, want 4", s.ColumnWidths()["NAME"])
	}
}

func TestMustRecordPanicsOnOddPairs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRecord with odd arguments should panic")
		}
	}()
	MustRecord("NAME")
}
