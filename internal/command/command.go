// Package command runs the external commands wrapped by `verbo time`.
package command

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Result holds the outcome of executing an external command.
type Result struct {
	// ExitCode is the exit status code returned by the command. A value of
	// -1 indicates an error occurred before the command could complete
	// (e.g., command not found, context cancelled).
	ExitCode int
	// Error is any error encountered during setup or execution of the
	// command itself. A non-zero exit code alone does not populate it.
	Error error
}

// Runner defines the interface for running external commands.
type Runner interface {
	// Run executes the command with the given arguments, wiring the provided
	// streams directly so interactive children behave naturally. It respects
	// the context for cancellation.
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (*Result, error)
}

// defaultRunner implements Runner using os/exec.
type defaultRunner struct{}

// NewRunner creates a new instance of the default command runner.
func NewRunner() Runner {
	return &defaultRunner{}
}

// Run executes the command with passthrough streams.
func (r *defaultRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	result := &Result{ExitCode: -1}

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			result.Error = ctx.Err()
			return result, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The command ran but exited non-zero. That is a result, not a
			// failure to run; the caller checks ExitCode.
			result.ExitCode = exitErr.ExitCode()
			result.Error = err
			return result, nil
		}

		// Command not found, permission problems, and similar.
		result.Error = err
		return result, err
	}

	result.ExitCode = 0
	return result, nil
}
