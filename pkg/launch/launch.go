// Package launch runs the wrapped tool and reports its exit status.
package launch

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/jackman/pkg/errors"
	"github.com/arthur-debert/jackman/pkg/logging"
)

// Launcher starts tools with the given standard streams
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
}

// New returns a Launcher inheriting the current process' streams
func New() *Launcher {
	return &Launcher{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes tool with args and returns its exit code. A tool that runs
// and fails is not an error; only failing to start it is. Cancelling ctx
// interrupts the tool.
func (l *Launcher) Run(ctx context.Context, tool string, args []string) (int, error) {
	logger := logging.GetLogger("launch")

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Dir = l.Dir
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}

	logger.Debug().Str("tool", tool).Strs("args", args).Msg("Executing command")

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal.
			code = 128 + signalNumber(exitErr)
		}
		logger.Debug().Str("tool", tool).Int("exitCode", code).Msg("Command failed")
		return code, nil
	}

	return -1, errors.Wrapf(err, errors.ErrLaunch, "cannot run %s", tool)
}
