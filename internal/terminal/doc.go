// Package terminal abstracts the interactive terminal that diskmgr draws
// tables on and reads answers from.
//
// The Terminal interface is injected into the renderer, prompts and menus,
// so none of them open a terminal handle on their own. TTY is the real
// implementation, built on golang.org/x/term for size and raw mode and on
// lipgloss for the fixed palette. Tests use terminaltest.Fake.
//
// # Raw Mode
//
// Raw mode is a scoped resource. Every read happens inside WithRawMode,
// which restores the saved terminal state and shows the cursor again
// however fn returns, panics included:
//
//	err := tty.WithRawMode(true, func() error {
//	    key, err := tty.ReadKey()
//	    ...
//	})
//
// # Color
//
// Color follows the NO_COLOR convention and is disabled when stdout is not
// a terminal. See ShouldDisableColor.
package terminal
