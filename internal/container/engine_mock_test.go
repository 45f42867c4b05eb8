// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

type (
	// MockCommandRecorder captures the commands an engine runs and answers
	// them through TestHelperProcess.
	MockCommandRecorder struct {
		mu sync.Mutex
		// Invocations records each created command
		Invocations []MockInvocation
		// ExitCode is the exit code to return (0 = success)
		ExitCode int
		// Stdout is the output to write to stdout
		Stdout string
	}

	// MockInvocation represents a single created command.
	MockInvocation struct {
		Name string
		Args []string
	}
)

// ContextCommandFunc returns a command.ExecCommandFunc that records the call
// and re-executes the test binary as TestHelperProcess.
func (m *MockCommandRecorder) ContextCommandFunc(t *testing.T) command.ExecCommandFunc {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		m.mu.Lock()
		m.Invocations = append(m.Invocations, MockInvocation{Name: name, Args: args})
		m.mu.Unlock()

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.ExitCode),
			"GO_HELPER_STDOUT=" + m.Stdout,
		}
		return cmd
	}
}

// LastArgs returns the arguments from the most recent invocation.
func (m *MockCommandRecorder) LastArgs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Invocations) == 0 {
		return nil
	}
	return m.Invocations[len(m.Invocations)-1].Args
}

// AssertArgs verifies the last invocation's arguments exactly.
func (m *MockCommandRecorder) AssertArgs(t *testing.T, expected ...string) {
	t.Helper()
	got := strings.Join(m.LastArgs(), " ")
	if want := strings.Join(expected, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

// AssertCommandName verifies the last command name.
func (m *MockCommandRecorder) AssertCommandName(t *testing.T, expected string) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Invocations) == 0 {
		t.Errorf("expected command %q but no commands were invoked", expected)
		return
	}
	if got := m.Invocations[len(m.Invocations)-1].Name; got != expected {
		t.Errorf("expected command %q, got %q", expected, got)
	}
}

// TestHelperProcess is used by the mock to simulate engine execution.
// It is not a real test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	// Drain stdin so login payloads are consumed like the real CLI does.
	_, _ = io.Copy(io.Discard, os.Stdin)

	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}

// newMockedEngine returns an engine whose commands are answered by a fresh
// recorder, plus the recorder and the announced command lines.
func newMockedEngine(t *testing.T, engineType EngineType, stdout string, exitCode int, opts ...BaseCLIEngineOption) (Engine, *MockCommandRecorder, *[]string) {
	t.Helper()

	recorder := &MockCommandRecorder{Stdout: stdout, ExitCode: exitCode}
	executor := command.NewExecExecutor(
		command.WithExecCommand(recorder.ContextCommandFunc(t)),
		command.WithOutput(io.Discard, io.Discard),
	)
	var (
		mu    sync.Mutex
		lines []string
	)
	runner := command.NewRunner(executor, func(line string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, line)
	})

	engine, err := NewEngine(engineType, runner, opts...)
	if err != nil {
		t.Fatalf("NewEngine(%q) error = %v", engineType, err)
	}
	return engine, recorder, &lines
}
