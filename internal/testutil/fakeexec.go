// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

type (
	// Response scripts the outcome of a matched invocation. A non-nil Err
	// simulates a process that could not be started.
	Response struct {
		ExitCode int
		Stdout   string
		Err      error
	}

	// Handler computes a Response from the invocation.
	Handler func(inv command.Invocation) Response

	// FakeExecutor is a command.Executor that records invocations and answers
	// from rules matched against the rendered command line. Unmatched
	// invocations succeed with empty output.
	FakeExecutor struct {
		mu      sync.Mutex
		calls   []command.Invocation
		rules   []rule
		missing map[string]bool
	}

	rule struct {
		prefix  string
		handler Handler
	}
)

// NewFakeExecutor creates an executor where every tool resolves and every
// command succeeds.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{missing: make(map[string]bool)}
}

// On answers invocations whose command line starts with prefix. Rules added
// later take precedence.
func (f *FakeExecutor) On(prefix string, resp Response) *FakeExecutor {
	return f.OnFunc(prefix, func(command.Invocation) Response { return resp })
}

// OnFunc is like On with a computed response.
func (f *FakeExecutor) OnFunc(prefix string, h Handler) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{prefix: prefix, handler: h})
	return f
}

// MissingTools makes LookPath fail for the given programs.
func (f *FakeExecutor) MissingTools(tools ...string) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range tools {
		f.missing[t] = true
	}
	return f
}

// Execute implements command.Executor.
func (f *FakeExecutor) Execute(_ context.Context, inv command.Invocation) (*command.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	line := inv.String()
	var h Handler
	for i := len(f.rules) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, f.rules[i].prefix) {
			h = f.rules[i].handler
			break
		}
	}
	f.mu.Unlock()

	if h == nil {
		return &command.Result{}, nil
	}
	resp := h(inv)
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &command.Result{ExitCode: resp.ExitCode, Stdout: resp.Stdout}, nil
}

// LookPath implements command.Executor.
func (f *FakeExecutor) LookPath(program string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[program] {
		return "", exec.ErrNotFound
	}
	return "/usr/bin/" + program, nil
}

// Calls returns a copy of the recorded invocations.
func (f *FakeExecutor) Calls() []command.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CommandLines returns the rendered command line of every recorded invocation.
func (f *FakeExecutor) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Count returns how many recorded command lines start with prefix.
func (f *FakeExecutor) Count(prefix string) int {
	n := 0
	for _, l := range f.CommandLines() {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

// Index returns the position of the first command line starting with prefix,
// or -1.
func (f *FakeExecutor) Index(prefix string) int {
	return slices.IndexFunc(f.CommandLines(), func(l string) bool { return strings.HasPrefix(l, prefix) })
}

// Find returns the first invocation whose command line starts with prefix.
func (f *FakeExecutor) Find(prefix string) (command.Invocation, bool) {
	for _, c := range f.Calls() {
		if strings.HasPrefix(c.String(), prefix) {
			return c, true
		}
	}
	return command.Invocation{}, false
}
