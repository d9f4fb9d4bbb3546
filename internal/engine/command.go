/*
PURPOSE:
  Runs one external toolchain command and records how long it took.

REQUIREMENTS:
  User-specified:
  - Working directory is always the project root.
  - Uncaptured commands stream straight to the terminal.
  - Captured commands are buffered; on failure the buffers are echoed to
    stderr so the diagnostics are not lost.
  - Any nonzero exit aborts the whole run. No retries.

  Implementation-discovered:
  - time.Now/time.Since carry the monotonic clock reading, so durations are
    unaffected by wall clock adjustments.
  - Output is decoded as text: CRLF is folded to LF.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go (Assembler)
  - Produces: model.CommandResult

ERROR HANDLING:
  - *CommandError for a nonzero exit.
  - Wrapped error if the process could not be started.

LIMITATIONS:
  - No timeout. A command that never exits blocks the run indefinitely.
*/

package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/daryltucker/cellbench/internal/model"
	"github.com/daryltucker/cellbench/internal/output"
)

// CommandError reports a step that exited with a nonzero status.
type CommandError struct {
	Label      string
	Args       []string
	ReturnCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q returned non-zero exit status %d: %s",
		e.Label, e.ReturnCode, shellescape.QuoteCommand(e.Args))
}

// Runner executes commands relative to a project root.
type Runner struct {
	Root string

	// Stdout and Stderr receive uncaptured output and, on failure, the
	// captured buffers. They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Command builds the process. Defaults to exec.Command.
	Command func(name string, args ...string) *exec.Cmd
}

// NewRunner creates a Runner bound to root.
func NewRunner(root string) *Runner {
	return &Runner{
		Root:    root,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Command: exec.Command,
	}
}

// Run executes args, labelled for display, and returns its record.
func (r *Runner) Run(label string, args []string, capture bool) (model.CommandResult, error) {
	if len(args) == 0 {
		return model.CommandResult{}, fmt.Errorf("%s: empty command", label)
	}
	newCmd := r.Command
	if newCmd == nil {
		newCmd = exec.Command
	}
	stdoutSink, stderrSink := r.sinks()

	cmd := newCmd(args[0], args[1:]...)
	cmd.Dir = r.Root

	cmd.Stdin = os.Stdin

	var stdoutBuf, stderrBuf bytes.Buffer
	if capture {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	} else {
		cmd.Stdout = stdoutSink
		cmd.Stderr = stderrSink
	}

	output.Logger.Info("Running step", "label", label, "capture", capture)

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	returnCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return model.CommandResult{}, fmt.Errorf("failed to run %s: %w", label, err)
		}
		returnCode = exitErr.ExitCode()
	}

	result := model.CommandResult{
		Label:      label,
		Command:    shellescape.QuoteCommand(args),
		Duration:   max(duration.Seconds(), 0),
		ReturnCode: returnCode,
	}
	if capture {
		stdout := decodeText(stdoutBuf.Bytes())
		stderr := decodeText(stderrBuf.Bytes())
		result.Stdout = &stdout
		result.Stderr = &stderr
	}

	if returnCode != 0 {
		if capture {
			io.WriteString(stderrSink, *result.Stdout)
			io.WriteString(stderrSink, *result.Stderr)
		}
		output.Logger.Error("Step failed", "label", label, "returncode", returnCode)
		return model.CommandResult{}, &CommandError{Label: label, Args: args, ReturnCode: returnCode}
	}

	output.Logger.Info("Step finished", "label", label, "duration", duration)
	return result, nil
}

func (r *Runner) sinks() (io.Writer, io.Writer) {
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

func decodeText(b []byte) string {
	return strings.ReplaceAll(string(b), "\r\n", "\n")
}
