package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/maauso/clipthumb/internal/metrics"
)

// Result is the outcome of a tool run that started successfully.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner invokes an external program. A nonzero exit is reported through
// Result.ExitCode, not as an error; errors mean the program never ran to
// completion (launch failure, timeout or cancellation).
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	// timeout bounds each invocation. Zero disables the deadline.
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner that kills any invocation running
// longer than timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run executes name with args and captures stdout and stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		metrics.ObserveTool(name, metrics.OutcomeCancelled, 0)
		return Result{}, fmt.Errorf("%s cancelled: %w", name, err)
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// #nosec G204 - tool paths come from configuration, not request input
	cmd := exec.CommandContext(runCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	// The caller's context wins over our own deadline.
	if err != nil && ctx.Err() != nil {
		metrics.ObserveTool(name, metrics.OutcomeCancelled, elapsed)
		return Result{}, fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	}
	if err != nil && runCtx.Err() != nil {
		metrics.ObserveTool(name, metrics.OutcomeTimeout, elapsed)
		return Result{}, fmt.Errorf("%w: %s killed after %s: %w", ErrProcessTimeout, name, r.timeout, runCtx.Err())
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		metrics.ObserveTool(name, metrics.OutcomeSuccess, elapsed)
		return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
	case errors.As(err, &exitErr):
		metrics.ObserveTool(name, metrics.OutcomeExitFailure, elapsed)
		return Result{
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout.Bytes(),
			Stderr:   stderr.Bytes(),
		}, nil
	default:
		metrics.ObserveTool(name, metrics.OutcomeLaunchError, elapsed)
		return Result{}, fmt.Errorf("%w: %s: %w", ErrProcessLaunch, name, err)
	}
}

// Verify interface implementation at compile time.
var _ Runner = (*ExecRunner)(nil)
