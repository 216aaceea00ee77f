package blockdev

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/diskmgr/internal/logging"
)

// Result is the captured outcome of one command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner runs external commands. ExecRunner is the real implementation;
// tests substitute a scripted one.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecConfig holds the configuration for command execution.
type ExecConfig struct {
	// Timeout bounds each command. Zero means no limit, which is what
	// surface scans need.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultExecConfig returns an ExecConfig with sensible defaults.
func DefaultExecConfig() ExecConfig {
	return ExecConfig{
		Timeout: 30 * time.Second,
	}
}

// ExecRunner executes commands via os/exec.
type ExecRunner struct {
	config ExecConfig
	logger *zap.Logger
}

// NewExecRunner creates a runner with the given configuration.
func NewExecRunner(config ExecConfig, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{
		config: config,
		logger: logger,
	}
}

// Run executes name with args and captures both output streams. A non-zero
// exit status is reported as a *CommandError carrying the output, and an
// expired timeout as a *TimeoutError.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	runCtx := ctx
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	r.logger.Debug("executing command",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Duration("timeout", r.config.Timeout),
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Command failed to start or other error
			res.ExitCode = -1
		}
	}

	r.logger.Debug("command output",
		zap.String("command", name),
		zap.Int("stdout_size", len(res.Stdout)),
		zap.String("stderr", res.Stderr),
	)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		err = &TimeoutError{Command: name, Timeout: r.config.Timeout}
	} else if err != nil {
		err = &CommandError{
			Command:  name,
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      err,
		}
	}

	logging.LogCommand(name, args, res.Duration, res.ExitCode, err)
	return res, err
}
