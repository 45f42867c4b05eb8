// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"testing"
)

func TestRunner_AnnouncesBeforeExecution(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, s)
	}

	inner := helperCommand(0, "")
	e := newTestExecutor(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		record("exec")
		return inner(ctx, name, args...)
	})
	r := NewRunner(e, func(line string) { record("announce " + line) })

	if err := r.Run(t.Context(), New("docker", "push", "host/repo:latest")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"announce docker push host/repo:latest", "exec"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRunner_OutputTrims(t *testing.T) {
	t.Parallel()

	r := NewRunner(newTestExecutor(helperCommand(0, "\n sha256:abc \n")), nil)
	out, err := r.Output(t.Context(), New("docker", "image", "ls", "-q", "mendix-rootfs:app"))
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if out != "sha256:abc" {
		t.Errorf("Output() = %q, want %q", out, "sha256:abc")
	}
}

func TestRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	r := NewRunner(newTestExecutor(helperCommand(2, "")), nil)
	err := r.Run(t.Context(), New("docker", "build", "-t", "ample2:local", "ctx"))

	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
	cfe, ok := errors.AsType[*CommandFailedError](err)
	if !ok {
		t.Fatalf("error type = %T, want *CommandFailedError", err)
	}
	if cfe.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", cfe.ExitCode)
	}
	if cfe.Command != "docker build -t ample2:local ctx" {
		t.Errorf("Command = %q", cfe.Command)
	}
	if ExitCode(err) != 2 {
		t.Errorf("ExitCode(err) = %d, want 2", ExitCode(err))
	}
}

func TestRunner_StartFailure(t *testing.T) {
	t.Parallel()

	r := NewRunner(newTestExecutor(func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/mxbuilder-test-binary")
	}), nil)

	err := r.Run(t.Context(), New("wsl", "-l", "-q"))
	if got := ExitCode(err); got != ExitCodeNotStarted {
		t.Errorf("ExitCode(err) = %d, want %d", got, ExitCodeNotStarted)
	}
	if !strings.Contains(err.Error(), "could not be started") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestRunner_Require(t *testing.T) {
	t.Parallel()

	e := NewExecExecutor(WithLookPath(func(file string) (string, error) {
		if file == "docker" {
			return "/usr/bin/docker", nil
		}
		return "", exec.ErrNotFound
	}))
	r := NewRunner(e, nil)

	if err := r.Require("docker"); err != nil {
		t.Errorf("Require(docker) error = %v", err)
	}

	err := r.Require("docker", "aws", "wsl")
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("error = %v, want ErrToolMissing", err)
	}
	tme, _ := errors.AsType[*ToolMissingError](err)
	if !slices.Equal(tme.Tools, []string{"aws", "wsl"}) {
		t.Errorf("Tools = %v, want [aws wsl]", tme.Tools)
	}
}

func TestInvocation_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		inv  Invocation
		want string
	}{
		{
			name: "plain",
			inv:  New("wsl", "-l", "-q"),
			want: "wsl -l -q",
		},
		{
			name: "script is quoted",
			inv:  New("wsl", "-d", "Ubuntu", "sh", "-lc", "cd /mnt/c/bp && python3 ./build.py"),
			want: "wsl -d Ubuntu sh -lc 'cd /mnt/c/bp && python3 ./build.py'",
		},
		{
			name: "stdin and env are not rendered",
			inv: New("docker", "login", "--username", "AWS", "--password-stdin", "1.dkr.ecr.x.amazonaws.com").
				WithStdin("s3cr3t").
				WithEnv(map[string]string{"AWS_SECRET_ACCESS_KEY": "hidden"}),
			want: "docker login --username AWS --password-stdin 1.dkr.ecr.x.amazonaws.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.inv.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvocation_Environ(t *testing.T) {
	t.Parallel()

	inv := New("aws").WithEnv(map[string]string{"B": "2", "A": "1"}).WithEnv(map[string]string{"B": "3"})
	got := inv.Environ([]string{"PATH=/bin"})
	want := []string{"PATH=/bin", "A=1", "B=3"}
	if !slices.Equal(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}
