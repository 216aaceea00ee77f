package blockdev

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/muurk/diskmgr/internal/logging"
	"go.uber.org/zap"
)

// Unmount unmounts target, a mount point or the device mounted there.
func Unmount(ctx context.Context, r Runner, target string) error {
	if _, err := r.Run(ctx, "umount", target); err != nil {
		return fmt.Errorf("failed to unmount %s: %w", target, err)
	}
	logging.Info("Unmounted", zap.String("target", target))
	return nil
}

// ScanOptions configures a badblocks run.
type ScanOptions struct {
	BlockSize int
	Passes    int
	// Destructive runs a write-mode test, which erases the device.
	Destructive bool
}

// ScanResult is the outcome of a completed scan.
type ScanResult struct {
	Device    string
	BadBlocks int
	Duration  time.Duration
	// Output is the combined badblocks output, progress lines included.
	Output string
}

// Clean reports whether no bad blocks were found.
func (r *ScanResult) Clean() bool {
	return r.BadBlocks == 0
}

var passSummary = regexp.MustCompile(`Pass completed, (\d+) bad blocks found`)

// ScanArgs builds the badblocks argument list for device.
func ScanArgs(device string, opts ScanOptions) []string {
	args := []string{"-s", "-v"}
	if opts.Destructive {
		args = append(args, "-w")
	}
	if opts.BlockSize > 0 {
		args = append(args, "-b", strconv.Itoa(opts.BlockSize))
	}
	if opts.Passes > 0 {
		args = append(args, "-p", strconv.Itoa(opts.Passes))
	}
	return append(args, device)
}

// Scan runs badblocks over device and reports the bad block count from its
// summary line.
func Scan(ctx context.Context, r Runner, device string, opts ScanOptions) (*ScanResult, error) {
	res, err := r.Run(ctx, "badblocks", ScanArgs(device, opts)...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", device, err)
	}

	// badblocks -v writes its summary to stderr.
	output := res.Stdout + res.Stderr
	count, err := ParseScanOutput(output)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", device, err)
	}

	logging.Info("Scan completed",
		zap.String("device", device),
		zap.Int("bad_blocks", count),
		zap.Duration("duration", res.Duration),
	)
	return &ScanResult{
		Device:    device,
		BadBlocks: count,
		Duration:  res.Duration,
		Output:    output,
	}, nil
}

// ParseScanOutput returns the bad block count from the last pass summary.
func ParseScanOutput(output string) (int, error) {
	matches := passSummary.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return 0, ErrNoScanSummary
	}
	return strconv.Atoi(matches[len(matches)-1][1])
}

// Prerequisite is the result of looking up one required tool.
type Prerequisite struct {
	Name      string
	Path      string
	Available bool
}

// CheckPrerequisites looks up each tool on PATH.
func CheckPrerequisites(tools ...string) []Prerequisite {
	checks := make([]Prerequisite, 0, len(tools))
	for _, tool := range tools {
		path, err := exec.LookPath(tool)
		checks = append(checks, Prerequisite{Name: tool, Path: path, Available: err == nil})
	}
	return checks
}

// RequireTools returns an error naming the first tool not found on PATH.
func RequireTools(tools ...string) error {
	for _, c := range CheckPrerequisites(tools...) {
		if !c.Available {
			return fmt.Errorf("%s not found in PATH (install util-linux or e2fsprogs)", c.Name)
		}
	}
	return nil
}
