// Package table provides the in-memory record store behind every table that
// diskmgr draws.
//
// A Store is built once per command invocation, either from literal records
// or by parsing the whitespace-aligned text that tools such as lsblk print.
// It owns the column order, the title, the set of right-justified columns and
// the column widths used by the renderer.
//
// # Parsing
//
// The first line of the text is the header. Every header token becomes a
// column, and the offset of its first character is the column position. Each
// following line is sliced at those positions, widening a cell to the left
// when its content starts before the header label (right-justified numbers)
// and narrowing it when the neighbouring cell does the same:
//
//	NAME   MAJ:MIN RM   SIZE RO TYPE MOUNTPOINT
//	sda      8:0    0 238.5G  0 disk
//	├─sda1   8:1    0   512M  0 part /boot/efi
//
// # Usage Example
//
//	store, err := table.New(
//	    table.FromText(output),
//	    table.WithTitle("block devices"),
//	    table.WithRightJustified("SIZE"),
//	)
//	if err != nil {
//	    return err
//	}
//	store.FilterStartsWith("TYPE", "disk")
//
// Column names are upper-cased on ingestion, so lookups are always done
// with upper-case names ("NAME", "SIZE", ...).
//
// # Widths
//
// Widths are terminal cell widths, not byte counts: the lsblk tree glyphs
// and other wide or multi-byte characters are measured with go-runewidth.
package table
