package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/diskmgr/internal/blockdev"
	"github.com/muurk/diskmgr/internal/config"
	"github.com/muurk/diskmgr/internal/logging"
	"github.com/muurk/diskmgr/internal/terminal"
)

// Command flags
var (
	scanDestructive bool
	scanPasses      int
	scanBlockSize   int
	forceInit       bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(unmountCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// loadApp loads the configuration and wires the terminal and runners.
func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(cfg, logging.GetLogger()), nil
}

// interrupted turns Ctrl-C at a prompt into a quiet exit.
func interrupted(a *app, err error) error {
	if errors.Is(err, terminal.ErrInterrupted) {
		fmt.Fprintln(a.term, "\nInterrupted.")
		return nil
	}
	return err
}

// listCmd shows the block device inventory
var listCmd = &cobra.Command{
	Use:   "list [DEVICE...]",
	Short: "List block devices",
	Long: `List block devices as reported by lsblk.

The columns come from lsblk.columns in the config file. NAME, TYPE and
MOUNTPOINT are always included.`,
	Example: `  # All devices
  diskmgr list

  # One disk and its partitions
  diskmgr list /dev/sdb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		a, err := loadApp()
		if err != nil {
			return err
		}
		return a.list(cmd.Context(), args...)
	},
}

// selectCmd runs the disk menu and prints the chosen device path
var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Choose a disk from a menu and print its device path",
	Long: `Show the whole disks as a numbered menu and print the device path of
the chosen one, for use in scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		a, err := loadApp()
		if err != nil {
			return err
		}
		device, err := a.selectDisk(cmd.Context())
		if err != nil {
			return interrupted(a, err)
		}
		fmt.Fprintln(a.term, device)
		return nil
	},
}

// unmountCmd unmounts every mounted filesystem of a disk
var unmountCmd = &cobra.Command{
	Use:   "unmount [DEVICE]",
	Short: "Unmount all filesystems of a disk",
	Long: `Unmount every mounted filesystem of a disk: its partitions, LVM or crypt
volumes on them, or a filesystem on the bare disk.

The mounted devices are listed and the operation asks for confirmation
before running umount on each of them. Without DEVICE a disk menu is shown.`,
	Example: `  # Pick the disk from a menu
  diskmgr unmount

  # Unmount everything mounted from /dev/sdb
  diskmgr unmount /dev/sdb`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		a, err := loadApp()
		if err != nil {
			return err
		}
		device, err := a.resolveDevice(cmd.Context(), args)
		if err != nil {
			return interrupted(a, err)
		}
		return interrupted(a, a.unmount(cmd.Context(), device))
	},
}

// scanCmd runs a badblocks surface scan
var scanCmd = &cobra.Command{
	Use:   "scan [DEVICE]",
	Short: "Surface-scan a disk for bad blocks",
	Long: `Run badblocks over a whole disk.

The default test is read-only. With --destructive (or badblocks.destructive
in the config file) badblocks runs its write-mode test, which overwrites
every block of the device; you must type "I AGREE" to start it.

Disks with anything mounted are refused: unmount them first.`,
	Example: `  # Read-only scan of a disk picked from the menu
  sudo diskmgr scan

  # Two read-only passes over /dev/sdb
  sudo diskmgr scan /dev/sdb --passes 2

  # Write-mode test (erases the disk)
  sudo diskmgr scan /dev/sdb --destructive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanDestructive, "destructive", false, "Run the write-mode test (erases the device)")
	scanCmd.Flags().IntVar(&scanPasses, "passes", 0, "Number of passes (default from badblocks.passes)")
	scanCmd.Flags().IntVar(&scanBlockSize, "block-size", 0, "Block size in bytes (default from badblocks.block_size)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if err := blockdev.RequireTools("badblocks", "lsblk"); err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}

	opts := blockdev.ScanOptions{
		BlockSize:   a.cfg.Badblocks.BlockSize,
		Passes:      a.cfg.Badblocks.Passes,
		Destructive: a.cfg.Badblocks.Destructive || scanDestructive,
	}
	if scanPasses > 0 {
		opts.Passes = scanPasses
	}
	if scanBlockSize > 0 {
		if scanBlockSize%512 != 0 {
			return fmt.Errorf("--block-size must be a multiple of 512, got %d", scanBlockSize)
		}
		opts.BlockSize = scanBlockSize
	}

	device, err := a.resolveDevice(cmd.Context(), args)
	if err != nil {
		return interrupted(a, err)
	}
	_, err = a.scan(cmd.Context(), device, opts)
	return interrupted(a, err)
}

// configCmd groups the config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Example: `  # Create the default config file
  diskmgr config init

  # Replace an existing one
  diskmgr config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path, err := config.CreateDefaultConfig(forceInit)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		return a.showConfig(path)
	},
}
