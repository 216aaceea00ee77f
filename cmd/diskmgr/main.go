// Diskmgr lists, unmounts and surface-scans block devices from the terminal.
//
// It draws lsblk's inventory as a boxed table, lets the user pick a disk
// from a numbered menu, and wraps umount and badblocks with confirmations
// and result boxes.
//
// Usage:
//
//	diskmgr [command] [flags]
//
// Commands that take a DEVICE argument show the disk menu when it is
// omitted. See 'diskmgr --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/diskmgr/internal/config"
	"github.com/muurk/diskmgr/internal/logging"
	"github.com/muurk/diskmgr/internal/terminal"
	"github.com/muurk/diskmgr/internal/version"
)

// Global flags
var (
	logLevel   string
	configPath string
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "diskmgr",
	Short: "Terminal block device manager",
	Long: `Inspect and maintain block devices from the terminal.

Lists devices with lsblk, unmounts the partitions of a disk and runs
badblocks surface scans. Every operation that changes a device asks for
confirmation first.

Commands that take a DEVICE argument show a disk selection menu when it is
omitted.`,
	Version: version.Version,
	Example: `  # Show all block devices
  diskmgr list

  # Pick a disk and unmount its partitions
  diskmgr unmount

  # Read-only surface scan of /dev/sdb
  sudo diskmgr scan /dev/sdb`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevel); err != nil {
			return err
		}
		config.SetPath(configPath)
		terminal.ApplyColorProfile()
		return nil
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the per-user config directory)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("diskmgr %s\n", version.Full())
	},
}
