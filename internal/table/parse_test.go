package table

import (
	"errors"
	"testing"
)

const lsblkOutput = `NAME   MAJ:MIN RM   SIZE RO TYPE MOUNTPOINT
sda      8:0    0 238.5G  0 disk
├─sda1   8:1    0   512M  0 part /boot/efi
└─sda2   8:2    0   238G  0 part /
sr0     11:0    1  1024M  0 rom
`

func TestParseTextSimple(t *testing.T) {
	records, err := ParseText("Name Age\nJohn 25\nJane 30\n")
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	want := []Record{
		MustRecord("Name", "John", "Age", "25"),
		MustRecord("Name", "Jane", "Age", "30"),
	}
	assertRecords(t, records, want)
}

func TestParseTextLsblk(t *testing.T) {
	records, err := ParseText(lsblkOutput)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	want := []Record{
		MustRecord("NAME", "sda", "MAJ:MIN", "8:0", "RM", "0", "SIZE", "238.5G", "RO", "0", "TYPE", "disk", "MOUNTPOINT", ""),
		MustRecord("NAME", "├─sda1", "MAJ:MIN", "8:1", "RM", "0", "SIZE", "512M", "RO", "0", "TYPE", "part", "MOUNTPOINT", "/boot/efi"),
		MustRecord("NAME", "└─sda2", "MAJ:MIN", "8:2", "RM", "0", "SIZE", "238G", "RO", "0", "TYPE", "part", "MOUNTPOINT", "/"),
		MustRecord("NAME", "sr0", "MAJ:MIN", "11:0", "RM", "1", "SIZE", "1024M", "RO", "0", "TYPE", "rom", "MOUNTPOINT", ""),
	}
	assertRecords(t, records, want)
}

func TestParseTextEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Record
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "header only",
			text: "NAME SIZE\n",
			want: []Record{},
		},
		{
			name: "short line leaves trailing cells empty",
			text: "NAME  SIZE  TYPE\nab\n",
			want: []Record{MustRecord("NAME", "ab", "SIZE", "", "TYPE", "")},
		},
		{
			name: "value wider than its header",
			text: "NAME  SIZE\nverylongname 8G\n",
			want: []Record{MustRecord("NAME", "verylongname", "SIZE", "8G")},
		},
		{
			name: "right-justified value starts before its header",
			text: "ID      BYTES\n1    1048576\n",
			want: []Record{MustRecord("ID", "1", "BYTES", "1048576")},
		},
		{
			name: "crlf line endings and blank lines",
			text: "A  B\r\n\r\nx  y\r\n",
			want: []Record{MustRecord("A", "x", "B", "y")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseText(tt.text)
			if err != nil {
				t.Fatalf("ParseText() error = %v", err)
			}
			assertRecords(t, got, tt.want)
		})
	}
}

func TestParseTextDuplicateColumn(t *testing.T) {
	_, err := ParseText("NAME name\na b\n")
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("ParseText() error = %v, want ErrDuplicateColumn", err)
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseText() error type = %T, want *ParseError", err)
	}
	if perr.Column != "name" {
		t.Errorf("ParseError.Column = %q, want %q", perr.Column, "name")
	}
}

func assertRecords(t *testing.T, got, want []Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].String() != want[i].String() {
			t.Errorf("record %d = %v, want %v", i, got[i], want[i])
		}
	}
}
