// Package logging provides structured logging for diskmgr.
//
// This package wraps a global zap logger with convenience functions for the
// events the tool cares about: external commands (lsblk, umount, badblocks),
// menu selections and rejected prompt answers.
//
// # Log Levels
//
//   - Debug: layout decisions, rejected responses, full command output
//   - Info: commands run, selections made
//   - Warn: commands that failed
//   - Error: failures that abort a command
//
// # Structured Logging
//
//	logging.Info("Unmounted partition",
//	    zap.String("device", "/dev/sdb1"),
//	    zap.String("mountpoint", "/media/usb"),
//	)
//
//	logging.LogCommand("lsblk", args, duration, exitCode, err)
//
// # Configuration
//
// Logging is silent unless a level is requested, either with --log-level or
// the DISKMGR_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Output
//
// Logs are written to stderr in console format. Stdout carries the tables
// and prompts, so redirecting stderr keeps the interactive output clean.
package logging
