// SPDX-License-Identifier: MPL-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

type (
	// Executor starts processes. It reports a Result for any process that ran,
	// whatever its exit code, and an error only when the process could not run.
	Executor interface {
		Execute(ctx context.Context, inv Invocation) (*Result, error)
		LookPath(program string) (string, error)
	}

	// ExecCommandFunc is the function signature for creating exec.Cmd.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// LookPathFunc resolves an executable on the search path.
	LookPathFunc func(file string) (string, error)

	// ExecExecutor is the os/exec backed Executor.
	ExecExecutor struct {
		execCommand ExecCommandFunc
		lookPath    LookPathFunc
		stdout      io.Writer
		stderr      io.Writer
	}

	// ExecutorOption configures an ExecExecutor.
	ExecutorOption func(*ExecExecutor)
)

// WithExecCommand sets the function used to create exec.Cmd instances.
func WithExecCommand(fn ExecCommandFunc) ExecutorOption {
	return func(e *ExecExecutor) {
		e.execCommand = fn
	}
}

// WithLookPath sets the executable resolver.
func WithLookPath(fn LookPathFunc) ExecutorOption {
	return func(e *ExecExecutor) {
		e.lookPath = fn
	}
}

// WithOutput sets where streamed stdout and stderr go. Captured invocations
// still forward stderr.
func WithOutput(stdout, stderr io.Writer) ExecutorOption {
	return func(e *ExecExecutor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecExecutor creates an ExecExecutor that inherits the process' stdio.
func NewExecExecutor(opts ...ExecutorOption) *ExecExecutor {
	e := &ExecExecutor{
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LookPath resolves program on the search path.
func (e *ExecExecutor) LookPath(program string) (string, error) {
	return e.lookPath(program)
}

// Execute runs inv to completion.
func (e *ExecExecutor) Execute(ctx context.Context, inv Invocation) (*Result, error) {
	cmd := e.execCommand(ctx, inv.Program, inv.Args...)
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		// A non-nil Env replaces the inherited environment, so start from it.
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = inv.Environ(base)
	}
	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	var out bytes.Buffer
	if inv.Capture {
		cmd.Stdout = &out
	} else {
		cmd.Stdout = e.stdout
	}
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := errors.AsType[*exec.ExitError](err); ok {
			return &Result{ExitCode: exitErr.ExitCode(), Stdout: out.String()}, nil
		}
		return nil, err
	}
	return &Result{ExitCode: 0, Stdout: out.String()}, nil
}
