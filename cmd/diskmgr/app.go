package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/diskmgr/internal/blockdev"
	"github.com/muurk/diskmgr/internal/config"
	"github.com/muurk/diskmgr/internal/menu"
	"github.com/muurk/diskmgr/internal/render"
	"github.com/muurk/diskmgr/internal/table"
	"github.com/muurk/diskmgr/internal/terminal"
	"github.com/muurk/diskmgr/internal/ui"
)

var (
	// errNoDisks is returned by the selection workflow when lsblk reports
	// no whole disks.
	errNoDisks = errors.New("no disks found")
	// errDeviceMounted is returned when a scan is refused because the
	// disk or a device on it is still mounted.
	errDeviceMounted = errors.New("device has mounted filesystems")
)

// app holds what every command works with: the terminal, the command
// runners and the loaded configuration.
type app struct {
	term terminal.Terminal
	cfg  *config.Config
	// runner runs lsblk and umount, bounded by commands.timeout.
	runner blockdev.Runner
	// scanRunner runs badblocks, which is not bounded.
	scanRunner blockdev.Runner
}

// newApp wires the real terminal and command runners for cfg.
func newApp(cfg *config.Config, logger *zap.Logger) *app {
	palette := terminal.Palette{
		Border: cfg.Palette.Border,
		Prompt: cfg.Palette.Prompt,
		Alert:  cfg.Palette.Alert,
		Echo:   cfg.Palette.Echo,
	}
	return &app{
		term:       terminal.NewTTY(palette),
		cfg:        cfg,
		runner:     blockdev.NewExecRunner(blockdev.ExecConfig{Timeout: cfg.Commands.Timeout}, logger),
		scanRunner: blockdev.NewExecRunner(blockdev.ExecConfig{}, logger),
	}
}

func (a *app) renderOptions() []render.Option {
	return []render.Option{render.WithMaxWidth(a.cfg.Display.MaxWidth)}
}

func (a *app) printer() *ui.Printer {
	return ui.NewPrinter(a.term, a.term.Width())
}

// list draws the block device inventory.
func (a *app) list(ctx context.Context, devices ...string) error {
	store, err := blockdev.Inventory(ctx, a.runner, a.cfg.Lsblk.Columns, devices...)
	if err != nil {
		return err
	}
	return render.Display(a.term, store, a.renderOptions()...)
}

// selectDisk shows the whole disks as a menu and returns the device path of
// the chosen one.
func (a *app) selectDisk(ctx context.Context) (string, error) {
	store, err := blockdev.Inventory(ctx, a.runner, a.cfg.Lsblk.Columns)
	if err != nil {
		return "", err
	}
	if blockdev.Disks(store).Count() == 0 {
		return "", errNoDisks
	}

	m, err := menu.New(a.term, store,
		menu.WithCue(fmt.Sprintf("Select a disk [1-%d]", store.Count())),
		menu.WithMaxWidth(a.cfg.Display.MaxWidth),
	)
	if err != nil {
		return "", err
	}
	if err := m.Run(); err != nil {
		return "", err
	}
	name, err := m.Selection(blockdev.ColumnName)
	if err != nil {
		return "", err
	}
	return blockdev.DevicePath(name), nil
}

// resolveDevice returns the device named on the command line, or runs the
// selection workflow when there is none.
func (a *app) resolveDevice(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return blockdev.DevicePath(args[0]), nil
	}
	return a.selectDisk(ctx)
}

// mountedPaths returns "<device> on <mountpoint>" for each mounted device,
// and the device paths alone.
func mountedPaths(mounted *table.Store) (described, paths []string) {
	for _, rec := range mounted.Records() {
		path := blockdev.NodePath(rec)
		paths = append(paths, path)
		described = append(described, path+" on "+rec.Value(blockdev.ColumnMountpoint))
	}
	return described, paths
}

// unmount unmounts every mounted filesystem of device after confirmation.
func (a *app) unmount(ctx context.Context, device string) error {
	mounted, err := blockdev.MountedDevices(ctx, a.runner, a.cfg.Lsblk.Columns, device)
	if err != nil {
		return err
	}
	p := a.printer()
	if mounted.Count() == 0 {
		p.PrintWarning("Nothing to unmount", ui.Detail{Key: "Device", Value: device})
		return nil
	}

	if err := render.Display(a.term, mounted, a.renderOptions()...); err != nil {
		return err
	}
	described, paths := mountedPaths(mounted)
	ok, err := ui.Confirm(a.term, "Unmount "+device, described, "Unmount all filesystems?")
	if err != nil || !ok {
		return err
	}

	for _, path := range paths {
		if err := blockdev.Unmount(ctx, a.runner, path); err != nil {
			p.PrintFailure("Unmount failed", err, []string{
				"Close any program using files on " + path,
				"Unmounting usually needs root: try running with sudo",
			})
			return err
		}
	}

	p.PrintSuccess("Filesystems unmounted",
		ui.Detail{Key: "Device", Value: device},
		ui.Detail{Key: "Unmounted", Value: strings.Join(paths, ", ")},
	)
	return nil
}

// scan runs badblocks over device. A device that is mounted, itself or
// through anything below it, is refused; a write-mode scan needs the typed
// agreement phrase.
func (a *app) scan(ctx context.Context, device string, opts blockdev.ScanOptions) (*blockdev.ScanResult, error) {
	mounted, err := blockdev.MountedDevices(ctx, a.runner, a.cfg.Lsblk.Columns, device)
	if err != nil {
		return nil, err
	}
	p := a.printer()
	if mounted.Count() > 0 {
		if err := render.Display(a.term, mounted, a.renderOptions()...); err != nil {
			return nil, err
		}
		err := fmt.Errorf("%w: %s (%d)", errDeviceMounted, device, mounted.Count())
		p.PrintFailure("Scan refused", err, []string{
			"Unmount its filesystems first: diskmgr unmount " + device,
		})
		return nil, err
	}

	var ok bool
	if opts.Destructive {
		ok, err = ui.DestructiveScanConfirmation(a.term, device)
	} else {
		ok, err = ui.Confirm(a.term, "Surface scan of "+device, []string{
			"badblocks reads every block, which can take hours on large disks",
			"Read-only test: no data on the device is changed",
			"Passes: " + strconv.Itoa(opts.Passes),
		}, "Start the scan?")
	}
	if err != nil || !ok {
		return nil, err
	}

	runner := ui.NewScanRunner(ui.ScanRunnerConfig{
		Device:  device,
		Command: "diskmgr scan " + device,
		Options: opts,
		Output:  a.term,
		Width:   a.term.Width(),
	})
	return runner.Run(ctx, func(ctx context.Context) (*blockdev.ScanResult, error) {
		return blockdev.Scan(ctx, a.scanRunner, device, opts)
	})
}

// settingsTable builds the KEY/VALUE table shown by "config show".
func settingsTable(cfg *config.Config, path string) (*table.Store, error) {
	settings := cfg.Settings()
	records := make([]table.Record, len(settings))
	for i, s := range settings {
		records[i] = table.MustRecord("KEY", s.Key, "VALUE", s.Value)
	}
	return table.New(
		table.FromRecords(records...),
		table.WithTitle("Configuration "+path),
	)
}

// showConfig draws the effective configuration.
func (a *app) showConfig(path string) error {
	store, err := settingsTable(a.cfg, path)
	if err != nil {
		return err
	}
	return render.Display(a.term, store, a.renderOptions()...)
}
