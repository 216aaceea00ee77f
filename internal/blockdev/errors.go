package blockdev

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoScanSummary is returned when badblocks output has no
// "Pass completed" line, usually because the scan was interrupted.
var ErrNoScanSummary = errors.New("badblocks output has no pass summary")

// CommandError represents a command that ran and failed.
type CommandError struct {
	// Command is the program that was run
	Command string
	// Args are its arguments
	Args []string
	// ExitCode is the process exit code, -1 if it never started
	ExitCode int
	// Stderr is the process stderr output
	Stderr string
	// Underlying error
	Err error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed (exit code %d)", e.commandLine(), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) commandLine() string {
	return strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
}

// TimeoutError represents a command that did not finish in time.
type TimeoutError struct {
	// Command is the program that timed out
	Command string
	// Timeout is the duration that was exceeded
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s\n"+
		"Hint: Increase commands.timeout in the config file",
		e.Command, e.Timeout)
}
