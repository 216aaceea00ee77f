// Package render draws table stores and prompt messages on a terminal.
//
// Layout is capped at DefaultMaxWidth (79) columns and centered on wider
// terminals. When a table does not fit inside its borders the widest
// columns are shrunk one cell at a time, and values are truncated to the
// resulting widths.
//
// A table is always drawn as the same sequence of rows:
//
//	╔════════════════════╗   top
//	║   BLOCK DEVICES    ║   title
//	╟────────────────────╢   inner
//	║ NAME    SIZE  TYPE ║   headings
//	║ sda   238.5G  disk ║   one row per record
//	╚════════════════════╝   bottom
//
// The store never references the renderer; Display and DisplayMenu compose
// the two.
package render
