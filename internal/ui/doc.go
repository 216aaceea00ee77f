// Package ui provides the styled boxes and confirmations around diskmgr's
// destructive operations.
//
// The tables and prompts themselves come from the render and prompt
// packages. This package adds the pieces drawn with Lipgloss:
//
//   - Header: operation banner showing the command and its parameters
//   - Result: success, failure and warning boxes
//   - Confirm / ConfirmDangerousOperation: a warning box followed by a y/n
//     keystroke question, or by a typed "I AGREE" for operations that erase
//     data
//   - ScanRunner: header, an inline Bubble Tea spinner while badblocks runs,
//     then a result box
//
// Example:
//
//	runner := ui.NewScanRunner(ui.ScanRunnerConfig{
//	    Device:  "/dev/sdb",
//	    Command: "diskmgr scan /dev/sdb",
//	    Options: opts,
//	})
//	res, err := runner.Run(ctx, func(ctx context.Context) (*blockdev.ScanResult, error) {
//	    return blockdev.Scan(ctx, scanRunner, "/dev/sdb", opts)
//	})
//
// # Logging Integration
//
// Logging is controlled via the DISKMGR_LOG_LEVEL environment variable and
// goes to stderr, so these boxes stay clean on stdout.
package ui
