// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"strings"
)

type (
	// Announcer receives each rendered command line before the process starts.
	Announcer func(commandLine string)

	// Runner executes invocations through an Executor. Every invocation is
	// announced first; a non-zero exit becomes a CommandFailedError.
	Runner struct {
		executor Executor
		announce Announcer
	}
)

// NewRunner creates a Runner. A nil announcer discards command lines.
func NewRunner(executor Executor, announce Announcer) *Runner {
	if announce == nil {
		announce = func(string) {}
	}
	return &Runner{executor: executor, announce: announce}
}

// WithAnnouncer returns a Runner sharing r's executor that reports to announce.
func (r *Runner) WithAnnouncer(announce Announcer) *Runner {
	return NewRunner(r.executor, announce)
}

// Executor returns the underlying executor.
func (r *Runner) Executor() Executor {
	return r.executor
}

// Run executes inv with its output streamed.
func (r *Runner) Run(ctx context.Context, inv Invocation) error {
	inv.Capture = false
	_, err := r.execute(ctx, inv)
	return err
}

// Output executes inv and returns its stdout with surrounding whitespace trimmed.
func (r *Runner) Output(ctx context.Context, inv Invocation) (string, error) {
	inv.Capture = true
	res, err := r.execute(ctx, inv)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// OutputRaw executes inv and returns its stdout untouched.
func (r *Runner) OutputRaw(ctx context.Context, inv Invocation) (string, error) {
	inv.Capture = true
	res, err := r.execute(ctx, inv)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// Require checks that every tool resolves on the search path. All missing
// tools are reported together.
func (r *Runner) Require(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := r.executor.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return &ToolMissingError{Tools: missing}
	}
	return nil
}

func (r *Runner) execute(ctx context.Context, inv Invocation) (*Result, error) {
	line := inv.String()
	r.announce(line)

	res, err := r.executor.Execute(ctx, inv)
	if err != nil {
		return nil, &CommandFailedError{Command: line, ExitCode: ExitCodeNotStarted, Cause: err}
	}
	if res.ExitCode != 0 {
		return res, &CommandFailedError{Command: line, ExitCode: res.ExitCode}
	}
	return res, nil
}
