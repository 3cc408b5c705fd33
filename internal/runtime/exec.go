package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/miles-labs/create-miles/internal/ctxlog"
)

// ExecRunner runs commands with os/exec. The child's standard streams are
// connected directly to the configured reader and writers, which default to
// the parent's own stdin, stdout and stderr; nothing is captured.
type ExecRunner struct {
	// Stdin, Stdout and Stderr can be set for testing.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run resolves cmd.Name on PATH, runs it, and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	commandLine := cmd.String()

	bin, err := exec.LookPath(cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cmd.Name, err)
	}

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = orReader(r.Stdin, os.Stdin)
	c.Stdout = orWriter(r.Stdout, os.Stdout)
	c.Stderr = orWriter(r.Stderr, os.Stderr)

	logger.Debug("running command", "command", commandLine, "dir", cmd.Dir)

	err = c.Run()
	result := &Result{CommandLine: commandLine}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logger.Debug("command exited", "command", commandLine, "exit_code", result.ExitCode)
			return result, nil
		}
		return nil, fmt.Errorf("running %s: %w", commandLine, err)
	}

	logger.Debug("command exited", "command", commandLine, "exit_code", 0)
	return result, nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
