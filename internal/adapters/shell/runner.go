// Package shell provides the command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner attached to the process standard streams.
func NewRunner(logger ports.Logger) *Runner {
	return NewRunnerWithStreams(logger, os.Stdout, os.Stderr)
}

// NewRunnerWithStreams creates a Runner writing child output to the given streams.
func NewRunnerWithStreams(logger ports.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes cmd and blocks until it exits.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) error {
	stdout, stderr := r.streams(ctx)
	return r.run(ctx, cmd, stdout, stderr)
}

// Output executes cmd and returns its standard output.
func (r *Runner) Output(ctx context.Context, cmd domain.Command) (string, error) {
	var buf bytes.Buffer
	_, stderr := r.streams(ctx)
	if err := r.run(ctx, cmd, &buf, stderr); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// streams tees child output into the active telemetry vertex, if any.
func (r *Runner) streams(ctx context.Context) (io.Writer, io.Writer) {
	v, ok := ports.VertexFromContext(ctx)
	if !ok {
		return r.stdout, r.stderr
	}
	return io.MultiWriter(r.stdout, v.Stdout()), io.MultiWriter(r.stderr, v.Stderr())
}

func (r *Runner) run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands are built by the pipeline
	c.Dir = cmd.Dir
	c.Stdin = os.Stdin
	c.Stdout = stdout
	c.Stderr = stderr
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	r.logger.Info("running " + cmd.String())

	if err := c.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		msg := fmt.Sprintf("%s: %s", domain.ErrCommandFailed.Error(), cmd.String())
		runErr := zerr.With(zerr.Wrap(err, msg), "command", cmd.String())
		return zerr.With(runErr, "exit_code", exitCode)
	}

	return nil
}
