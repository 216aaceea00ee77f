package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/muurk/diskmgr/internal/blockdev"
	"github.com/muurk/diskmgr/internal/config"
	"github.com/muurk/diskmgr/internal/terminal"
	"github.com/muurk/diskmgr/internal/terminal/terminaltest"
)

// fakeRunner answers commands from a table keyed by the full command line.
type fakeRunner struct {
	results map[string]blockdev.Result
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: map[string]blockdev.Result{}}
}

func (f *fakeRunner) on(cmdline string, res blockdev.Result) *fakeRunner {
	f.results[cmdline] = res
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (blockdev.Result, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)
	res, ok := f.results[cmdline]
	if !ok {
		return blockdev.Result{}, &blockdev.CommandError{Command: name, Args: args, ExitCode: 1, Stderr: "unexpected command"}
	}
	return res, nil
}

func (f *fakeRunner) ran(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

const lsblkCmd = "lsblk -o NAME,SIZE,TYPE,FSTYPE,MOUNTPOINT,MODEL"

const lsblkAll = `NAME     SIZE TYPE FSTYPE MOUNTPOINT MODEL
sda    238.5G disk               Samsung SSD
├─sda1   512M part vfat   /boot/efi
└─sda2   238G part ext4   /
sdb      7.5G disk               Flash Disk
└─sdb1   7.5G part vfat   /media/usb
sr0     1024M rom
`

const lsblkSdb = `NAME   SIZE TYPE FSTYPE MOUNTPOINT MODEL
sdb    7.5G disk               Flash Disk
├─sdb1   4G part vfat   /media/usb
└─sdb2 3.5G part ext4
`

const lsblkSdc = `NAME   SIZE TYPE FSTYPE MOUNTPOINT MODEL
sdc    7.5G disk               Flash Disk
└─sdc1 7.5G part ext4
`

const lsblkSdd = `NAME SIZE TYPE FSTYPE MOUNTPOINT MODEL
sdd  7.5G disk vfat   /media/usb Flash Disk
`

const lsblkSde = `NAME          SIZE TYPE FSTYPE      MOUNTPOINT MODEL
sde           100G disk                        Data Disk
└─sde1        100G part LVM2_member
  └─vg-data   100G lvm  ext4        /srv
`

// mountedLayouts are disks whose only mount is not a plain partition.
var mountedLayouts = []struct {
	name   string
	device string
	output string
	node   string
	mount  string
}{
	{"filesystem on the bare disk", "/dev/sdd", lsblkSdd, "/dev/sdd", "/media/usb"},
	{"lvm volume below a partition", "/dev/sde", lsblkSde, "/dev/mapper/vg-data", "/srv"},
}

func newTestApp(keys string, r *fakeRunner) (*app, *terminaltest.Fake) {
	term := terminaltest.New(80).Type(keys)
	return &app{
		term:       term,
		cfg:        config.NewConfig(),
		runner:     r,
		scanRunner: r,
	}, term
}

func TestSelectDisk(t *testing.T) {
	r := newFakeRunner().on(lsblkCmd, blockdev.Result{Stdout: lsblkAll})
	a, term := newTestApp("2", r)

	device, err := a.selectDisk(context.Background())
	if err != nil {
		t.Fatalf("selectDisk() error = %v", err)
	}
	if device != "/dev/sdb" {
		t.Errorf("selectDisk() = %q, want %q", device, "/dev/sdb")
	}
	out := term.Output()
	for _, want := range []string{"BLOCK DEVICES", "Samsung SSD", "Select a disk [1-2]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sda1") {
		t.Errorf("menu should list whole disks only:\n%s", out)
	}
}

func TestSelectDiskWithoutDisks(t *testing.T) {
	r := newFakeRunner().on(lsblkCmd, blockdev.Result{Stdout: "NAME SIZE TYPE FSTYPE MOUNTPOINT MODEL\nsr0 1024M rom\n"})
	a, _ := newTestApp("", r)

	if _, err := a.selectDisk(context.Background()); !errors.Is(err, errNoDisks) {
		t.Errorf("selectDisk() error = %v, want %v", err, errNoDisks)
	}
}

func TestResolveDevice(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"sdb", "/dev/sdb"},
		{"/dev/sdb", "/dev/sdb"},
		{"/dev/disk/by-id/usb-Flash", "/dev/disk/by-id/usb-Flash"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			r := newFakeRunner()
			a, _ := newTestApp("", r)
			got, err := a.resolveDevice(context.Background(), []string{tt.arg})
			if err != nil {
				t.Fatalf("resolveDevice() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveDevice(%q) = %q, want %q", tt.arg, got, tt.want)
			}
			if len(r.calls) != 0 {
				t.Errorf("named device should not run commands, ran %v", r.calls)
			}
		})
	}
}

func TestUnmount(t *testing.T) {
	tests := []struct {
		name        string
		keys        string
		wantUnmount bool
		wantOutput  string
	}{
		{"confirmed", "y", true, "Filesystems unmounted"},
		{"declined", "n", false, "Operation cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner().
				on(lsblkCmd+" /dev/sdb", blockdev.Result{Stdout: lsblkSdb}).
				on("umount /dev/sdb1", blockdev.Result{})
			a, term := newTestApp(tt.keys, r)

			if err := a.unmount(context.Background(), "/dev/sdb"); err != nil {
				t.Fatalf("unmount() error = %v", err)
			}
			if got := r.ran("umount /dev/sdb1"); got != tt.wantUnmount {
				t.Errorf("umount ran = %v, want %v (calls %v)", got, tt.wantUnmount, r.calls)
			}
			if r.ran("umount /dev/sdb2") {
				t.Error("unmounted a partition with no mount point")
			}
			out := term.Output()
			for _, want := range []string{"/dev/sdb1 on /media/usb", tt.wantOutput} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestUnmountNothingMounted(t *testing.T) {
	r := newFakeRunner().on(lsblkCmd+" /dev/sdc", blockdev.Result{Stdout: lsblkSdc})
	a, term := newTestApp("", r)

	if err := a.unmount(context.Background(), "/dev/sdc"); err != nil {
		t.Fatalf("unmount() error = %v", err)
	}
	if !strings.Contains(term.Output(), "Nothing to unmount") {
		t.Errorf("output = %s", term.Output())
	}
	if r.ran("umount") {
		t.Errorf("ran umount with nothing mounted: %v", r.calls)
	}
}

func TestUnmountFailure(t *testing.T) {
	r := newFakeRunner().on(lsblkCmd+" /dev/sdb", blockdev.Result{Stdout: lsblkSdb})
	a, term := newTestApp("y", r)

	err := a.unmount(context.Background(), "/dev/sdb")
	var cmdErr *blockdev.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("unmount() error = %v, want *blockdev.CommandError", err)
	}
	if !strings.Contains(term.Output(), "Unmount failed") {
		t.Errorf("failure box not shown:\n%s", term.Output())
	}
}

func TestScanRefusesMountedDevice(t *testing.T) {
	r := newFakeRunner().on(lsblkCmd+" /dev/sdb", blockdev.Result{Stdout: lsblkSdb})
	a, term := newTestApp("y", r)

	_, err := a.scan(context.Background(), "/dev/sdb", blockdev.ScanOptions{BlockSize: 4096, Passes: 1})
	if !errors.Is(err, errDeviceMounted) {
		t.Fatalf("scan() error = %v, want %v", err, errDeviceMounted)
	}
	if r.ran("badblocks") {
		t.Errorf("badblocks ran on a mounted device: %v", r.calls)
	}
	if !strings.Contains(term.Output(), "diskmgr unmount /dev/sdb") {
		t.Errorf("output should suggest unmounting:\n%s", term.Output())
	}
}

func TestUnmountBeyondPartitions(t *testing.T) {
	for _, tt := range mountedLayouts {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner().
				on(lsblkCmd+" "+tt.device, blockdev.Result{Stdout: tt.output}).
				on("umount "+tt.node, blockdev.Result{})
			a, term := newTestApp("y", r)

			if err := a.unmount(context.Background(), tt.device); err != nil {
				t.Fatalf("unmount() error = %v", err)
			}
			if !r.ran("umount " + tt.node) {
				t.Errorf("umount %s not run (calls %v)", tt.node, r.calls)
			}
			out := term.Output()
			if strings.Contains(out, "Nothing to unmount") {
				t.Errorf("mounted filesystem not found:\n%s", out)
			}
			for _, want := range []string{tt.node + " on " + tt.mount, "Filesystems unmounted"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestScanRefusesMountedLayouts(t *testing.T) {
	for _, tt := range mountedLayouts {
		for _, destructive := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s destructive=%v", tt.name, destructive), func(t *testing.T) {
				r := newFakeRunner().on(lsblkCmd+" "+tt.device, blockdev.Result{Stdout: tt.output})
				a, _ := newTestApp("I AGREE\n", r)

				opts := blockdev.ScanOptions{BlockSize: 4096, Passes: 1, Destructive: destructive}
				_, err := a.scan(context.Background(), tt.device, opts)
				if !errors.Is(err, errDeviceMounted) {
					t.Fatalf("scan() error = %v, want %v", err, errDeviceMounted)
				}
				if r.ran("badblocks") {
					t.Errorf("badblocks ran on a mounted device: %v", r.calls)
				}
			})
		}
	}
}

func TestScanConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		keys        string
		destructive bool
		wantScan    bool
	}{
		{"read-only declined", "n", false, false},
		{"read-only confirmed", "y", false, true},
		{"destructive needs the phrase", "y\n", true, false},
		{"destructive agreed", "I AGREE\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := blockdev.ScanOptions{BlockSize: 4096, Passes: 1, Destructive: tt.destructive}
			badblocksCmd := "badblocks " + strings.Join(blockdev.ScanArgs("/dev/sdc", opts), " ")
			r := newFakeRunner().
				on(lsblkCmd+" /dev/sdc", blockdev.Result{Stdout: lsblkSdc}).
				on(badblocksCmd, blockdev.Result{Stderr: "Checking blocks 0 to 7864319\nPass completed, 0 bad blocks found. (0/0/0 errors)\n"})
			a, term := newTestApp(tt.keys, r)

			res, err := a.scan(context.Background(), "/dev/sdc", opts)
			if err != nil {
				t.Fatalf("scan() error = %v", err)
			}
			if got := r.ran(badblocksCmd); got != tt.wantScan {
				t.Errorf("badblocks ran = %v, want %v (calls %v)", got, tt.wantScan, r.calls)
			}
			if !tt.wantScan {
				if res != nil {
					t.Errorf("scan() = %+v, want nil after cancel", res)
				}
				return
			}
			if res == nil || !res.Clean() {
				t.Fatalf("scan() = %+v, want a clean result", res)
			}
			if !strings.Contains(term.Output(), "No bad blocks found") {
				t.Errorf("success box not shown:\n%s", term.Output())
			}
		})
	}
}

func TestShowConfig(t *testing.T) {
	a, term := newTestApp("", newFakeRunner())

	if err := a.showConfig("/home/user/.config/diskmgr/config.yaml"); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}
	out := term.Output()
	for _, want := range []string{"KEY", "VALUE", "display.max_width", "badblocks.block_size", "4096", "30s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsTable(t *testing.T) {
	cfg := config.NewConfig()
	store, err := settingsTable(cfg, "/tmp/config.yaml")
	if err != nil {
		t.Fatalf("settingsTable() error = %v", err)
	}
	if store.Count() != len(cfg.Settings()) {
		t.Errorf("Count() = %d, want %d", store.Count(), len(cfg.Settings()))
	}
	rec, _ := store.Record(0)
	if rec.Value("KEY") != "version" || rec.Value("VALUE") != "1" {
		t.Errorf("Record(0) = %v", rec)
	}
}

func TestInterrupted(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"interrupt", fmt.Errorf("prompt: %w", terminal.ErrInterrupted), nil},
		{"other", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, term := newTestApp("", newFakeRunner())
			if got := interrupted(a, tt.err); got != tt.want {
				t.Errorf("interrupted() = %v, want %v", got, tt.want)
			}
			if tt.name == "interrupt" && !strings.Contains(term.Output(), "Interrupted.") {
				t.Errorf("output = %q", term.Output())
			}
		})
	}
}
