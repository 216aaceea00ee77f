// Package menu lets the user pick one record of a table by its number.
//
// The table is drawn with a leading # column and a numeric prompt accepts
// 1 to the number of rows. New wraps an existing table; FromOptions builds a
// single OPTION column from plain strings.
//
// Example:
//
//	m, err := menu.FromOptions(term, "Days", []string{"Monday", "Tuesday", "Wednesday"})
//	if err != nil {
//	    return err
//	}
//	if err := m.Run(); err != nil {
//	    return err
//	}
//	day, err := m.Selection("option")
//
// Selection matches the column name case-insensitively and fails with
// ErrNoSelection until Run has succeeded.
package menu
