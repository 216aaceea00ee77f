package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/diskmgr/internal/blockdev"
)

// ScanFunc performs the scan the runner waits on.
type ScanFunc func(ctx context.Context) (*blockdev.ScanResult, error)

// ScanRunnerConfig holds configuration for a scan execution
type ScanRunnerConfig struct {
	Device  string               // e.g., "/dev/sdb"
	Command string               // Full command (e.g., "diskmgr scan /dev/sdb")
	Options blockdev.ScanOptions // Shown in the header
	Output  io.Writer            // Output writer (default: os.Stdout)
	Width   int                  // Zero means the width of stdout
}

// ScanRunner orchestrates the UI for a surface scan: a header, an inline
// spinner while badblocks runs, then a result box.
type ScanRunner struct {
	config  ScanRunnerConfig
	printer *Printer
}

// NewScanRunner creates a new runner for a scan
func NewScanRunner(config ScanRunnerConfig) *ScanRunner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &ScanRunner{
		config:  config,
		printer: NewPrinter(config.Output, config.Width),
	}
}

// Run shows the header, runs scan behind a spinner and prints the outcome.
// The scan result and error are returned unchanged. Leaving Run, including
// on an interrupt, cancels the context handed to scan.
func (r *ScanRunner) Run(ctx context.Context, scan ScanFunc) (*blockdev.ScanResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mode := "read-only"
	if r.config.Options.Destructive {
		mode = "write (destructive)"
	}
	r.printer.PrintHeader("Surface scan", r.config.Command,
		Detail{"Device", r.config.Device},
		Detail{"Mode", mode},
		Detail{"Block size", strconv.Itoa(r.config.Options.BlockSize)},
		Detail{"Passes", strconv.Itoa(r.config.Options.Passes)},
	)

	model := newScanModel("Scanning "+r.config.Device, func() tea.Msg {
		res, err := scan(ctx)
		return scanDoneMsg{result: res, err: err}
	})

	program := tea.NewProgram(model,
		tea.WithOutput(r.config.Output),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		r.printFailure(err)
		return nil, err
	}

	m := final.(scanModel)
	if m.err != nil {
		r.printFailure(m.err)
		return nil, m.err
	}
	r.printOutcome(m.result, time.Since(m.start))
	return m.result, nil
}

func (r *ScanRunner) printOutcome(res *blockdev.ScanResult, elapsed time.Duration) {
	device := Detail{"Device", res.Device}
	result := NewSuccessResult("No bad blocks found", device)
	if !res.Clean() {
		result = NewWarningResult(fmt.Sprintf("%d bad blocks found", res.BadBlocks), device)
	}
	result.AddDetail("Bad blocks", strconv.Itoa(res.BadBlocks)).
		AddDetail("Duration", elapsed.Round(time.Second).String())
	r.printer.PrintResult(result)
}

func (r *ScanRunner) printFailure(err error) {
	r.printer.PrintFailure("Scan failed", err, []string{
		"Scans need root: try running with sudo",
		"Check that " + r.config.Device + " is not mounted",
		"Run with --log-level debug for the badblocks output",
	})
}

// scanDoneMsg carries the scan outcome back to the program.
type scanDoneMsg struct {
	result *blockdev.ScanResult
	err    error
}

// scanModel is a Bubble Tea model that spins until the scan finishes.
type scanModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	start   time.Time
	done    bool
	result  *blockdev.ScanResult
	err     error
}

func newScanModel(label string, run tea.Cmd) scanModel {
	return scanModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(SpinnerStyle),
		),
		label: label,
		run:   run,
		start: time.Now(),
	}
}

// Init implements tea.Model
func (m scanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

// Update implements tea.Model
func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		m.done = true
		m.result, m.err = msg.result, msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m scanModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.start).Round(time.Second)
	return fmt.Sprintf("  %s %s %s\n",
		m.spinner.View(),
		SpinnerLabelStyle.Render(m.label),
		ElapsedStyle.Render("("+elapsed.String()+")"),
	)
}
