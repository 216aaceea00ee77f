package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Defaults for every setting.
const (
	DefaultMaxWidth       = 79
	DefaultBlockSize      = 4096
	DefaultPasses         = 1
	DefaultCommandTimeout = 30 * time.Second
)

// DefaultLsblkColumns is the column set requested from lsblk.
var DefaultLsblkColumns = []string{"NAME", "SIZE", "TYPE", "FSTYPE", "MOUNTPOINT", "MODEL"}

// Config represents the entire user configuration file.
type Config struct {
	Version   int        `yaml:"version"`
	Display   *Display   `yaml:"display,omitempty"`
	Palette   *Palette   `yaml:"palette,omitempty"`
	Lsblk     *Lsblk     `yaml:"lsblk,omitempty"`
	Badblocks *Badblocks `yaml:"badblocks,omitempty"`
	Commands  *Commands  `yaml:"commands,omitempty"`
}

// Display controls the layout of tables and prompts.
type Display struct {
	MaxWidth int `yaml:"max_width"` // Cap on the drawn width, centered on wider terminals
}

// Palette holds lipgloss color values (ANSI numbers or hex) for the fixed
// style kinds.
type Palette struct {
	Border string `yaml:"border"`
	Prompt string `yaml:"prompt"`
	Alert  string `yaml:"alert"`
	Echo   string `yaml:"echo"`
}

// Lsblk configures the device inventory.
type Lsblk struct {
	Columns []string `yaml:"columns"` // Passed to lsblk -o
}

// Badblocks configures surface scans.
type Badblocks struct {
	BlockSize   int  `yaml:"block_size"`  // -b
	Passes      int  `yaml:"passes"`      // -p
	Destructive bool `yaml:"destructive"` // -w, erases the device
}

// Commands configures external command execution.
type Commands struct {
	Timeout time.Duration `yaml:"timeout"` // Applies to lsblk and umount; scans are not bounded
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	c := &Config{Version: CurrentVersion}
	c.applyDefaults()
	return c
}

// applyDefaults fills missing sections and zero values.
func (c *Config) applyDefaults() {
	if c.Display == nil {
		c.Display = &Display{}
	}
	if c.Display.MaxWidth <= 0 {
		c.Display.MaxWidth = DefaultMaxWidth
	}

	if c.Palette == nil {
		c.Palette = &Palette{}
	}
	if c.Palette.Border == "" {
		c.Palette.Border = "4"
	}
	if c.Palette.Prompt == "" {
		c.Palette.Prompt = "3"
	}
	if c.Palette.Alert == "" {
		c.Palette.Alert = "1"
	}
	if c.Palette.Echo == "" {
		c.Palette.Echo = "2"
	}

	if c.Lsblk == nil {
		c.Lsblk = &Lsblk{}
	}
	if len(c.Lsblk.Columns) == 0 {
		c.Lsblk.Columns = append([]string(nil), DefaultLsblkColumns...)
	}

	if c.Badblocks == nil {
		c.Badblocks = &Badblocks{}
	}
	if c.Badblocks.BlockSize <= 0 {
		c.Badblocks.BlockSize = DefaultBlockSize
	}
	if c.Badblocks.Passes <= 0 {
		c.Badblocks.Passes = DefaultPasses
	}

	if c.Commands == nil {
		c.Commands = &Commands{}
	}
	if c.Commands.Timeout <= 0 {
		c.Commands.Timeout = DefaultCommandTimeout
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.Display.MaxWidth < 10 {
		return fmt.Errorf("display.max_width must be at least 10, got %d", c.Display.MaxWidth)
	}
	for _, col := range c.Lsblk.Columns {
		if col == "" || strings.ContainsAny(col, " ,") {
			return fmt.Errorf("lsblk.columns: invalid column %q", col)
		}
	}
	if !containsFold(c.Lsblk.Columns, "NAME") {
		return fmt.Errorf("lsblk.columns must include NAME")
	}
	if c.Badblocks.BlockSize%512 != 0 {
		return fmt.Errorf("badblocks.block_size must be a multiple of 512, got %d", c.Badblocks.BlockSize)
	}
	return nil
}

// Setting is one effective value, for display.
type Setting struct {
	Key   string
	Value string
}

// Settings flattens the config into dotted keys in file order.
func (c *Config) Settings() []Setting {
	return []Setting{
		{"version", strconv.Itoa(c.Version)},
		{"display.max_width", strconv.Itoa(c.Display.MaxWidth)},
		{"palette.border", c.Palette.Border},
		{"palette.prompt", c.Palette.Prompt},
		{"palette.alert", c.Palette.Alert},
		{"palette.echo", c.Palette.Echo},
		{"lsblk.columns", strings.Join(c.Lsblk.Columns, ",")},
		{"badblocks.block_size", strconv.Itoa(c.Badblocks.BlockSize)},
		{"badblocks.passes", strconv.Itoa(c.Badblocks.Passes)},
		{"badblocks.destructive", strconv.FormatBool(c.Badblocks.Destructive)},
		{"commands.timeout", c.Commands.Timeout.String()},
	}
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
