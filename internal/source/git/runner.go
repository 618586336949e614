package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const (
	// DefaultTimeout bounds every git invocation when no timeout is configured.
	DefaultTimeout = 5 * time.Second

	// pipeGracePeriod bounds how long Run waits for output pipes after the
	// timeout kills the command. Descendants may still hold them open.
	pipeGracePeriod = 100 * time.Millisecond
)

// ErrTimeout is returned when a command does not finish within the runner timeout.
var ErrTimeout = errors.New("command timed out")

// Runner executes an external command and returns its stdout and exit code.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, exitCode int, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// timeout bounds a single command execution.
	timeout time.Duration
}

// NewExecRunner creates a runner bounding each command by timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ExecRunner{
		timeout: timeout,
	}
}

// Run executes name with args in dir. Stderr is discarded.
// A non-zero exit is reported through exitCode with a nil error; failures to
// start the process and timeouts are returned as errors.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.WaitDelay = pipeGracePeriod

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", -1, fmt.Errorf("%s after %s: %w", name, r.timeout, ErrTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), exitErr.ExitCode(), nil
	}

	if err != nil {
		return "", -1, fmt.Errorf("run %s: %w", name, err)
	}

	return stdout.String(), 0, nil
}
