// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

func TestFakeExecutor_Rules(t *testing.T) {
	t.Parallel()

	fake := NewFakeExecutor().
		On("docker image ls", Response{Stdout: "abc"}).
		On("docker image ls -q missing", Response{}).
		On("wsl", Response{Err: errors.New("boom")})
	ctx := t.Context()

	res, err := fake.Execute(ctx, command.New("docker", "image", "ls", "-q", "ample2:local"))
	if err != nil || res.Stdout != "abc" {
		t.Errorf("Execute() = %+v, %v", res, err)
	}
	res, err = fake.Execute(ctx, command.New("docker", "image", "ls", "-q", "missing"))
	if err != nil || res.Stdout != "" {
		t.Errorf("later rule should win: %+v, %v", res, err)
	}
	if _, err := fake.Execute(ctx, command.New("wsl", "-l", "-q")); err == nil {
		t.Error("Err response should fail Execute")
	}
	res, err = fake.Execute(ctx, command.New("aws", "sts", "get-caller-identity"))
	if err != nil || res.ExitCode != 0 {
		t.Errorf("unmatched = %+v, %v", res, err)
	}

	if got := fake.Count("docker"); got != 2 {
		t.Errorf("Count(docker) = %d", got)
	}
	if got := fake.Index("wsl"); got != 2 {
		t.Errorf("Index(wsl) = %d", got)
	}
	if _, ok := fake.Find("podman"); ok {
		t.Error("Find(podman) found a call")
	}
}

func TestFakeExecutor_MissingTools(t *testing.T) {
	t.Parallel()

	fake := NewFakeExecutor().MissingTools("aws")
	if _, err := fake.LookPath("aws"); !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("LookPath(aws) = %v", err)
	}
	if p, err := fake.LookPath("docker"); err != nil || p != "/usr/bin/docker" {
		t.Errorf("LookPath(docker) = %q, %v", p, err)
	}
}
