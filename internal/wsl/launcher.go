// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"context"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

// DefaultProgram is the launcher executable name.
const DefaultProgram = "wsl"

// Launcher runs the WSL launcher through a command.Runner.
type Launcher struct {
	runner  *command.Runner
	program string
}

// NewLauncher creates a Launcher. An empty program means DefaultProgram.
func NewLauncher(runner *command.Runner, program string) *Launcher {
	if program == "" {
		program = DefaultProgram
	}
	return &Launcher{runner: runner, program: program}
}

// Program returns the launcher executable.
func (l *Launcher) Program() string {
	return l.program
}

// List returns the installed distros. It never fails: any launcher error
// yields an empty list.
func (l *Launcher) List(ctx context.Context) []string {
	out, err := l.runner.OutputRaw(ctx, command.New(l.program, "-l", "-q"))
	if err != nil {
		return []string{}
	}
	names := ParseList(out)
	if names == nil {
		return []string{}
	}
	return names
}

// Validate normalizes name and checks it against the current listing. It
// returns the normalized name.
func (l *Launcher) Validate(ctx context.Context, name string) (string, error) {
	n := NormalizeName(name)
	if n == "" {
		return "", &InvalidEnvironmentError{Name: n}
	}
	available := l.List(ctx)
	if !slices.Contains(available, n) {
		return "", &InvalidEnvironmentError{Name: n, Available: available}
	}
	return n, nil
}

// Probe runs `<program> --version` inside distro and returns its trimmed
// output. Python 2 prints its version on stderr, so empty output is accepted.
func (l *Launcher) Probe(ctx context.Context, distro, program string, env map[string]string) (string, error) {
	inv := l.invocation(distro, env, program, "--version")
	out, err := l.runner.Output(ctx, inv)
	if err != nil {
		return "", &RuntimeUnavailableError{Distro: distro, Program: program, Cause: err}
	}
	return out, nil
}

// Shell runs script with `sh -lc` inside distro.
func (l *Launcher) Shell(ctx context.Context, distro, script string, env map[string]string) error {
	return l.runner.Run(ctx, l.ShellInvocation(distro, script, env))
}

// ShellInvocation builds the `wsl -d <distro> sh -lc "<script>"` invocation.
func (l *Launcher) ShellInvocation(distro, script string, env map[string]string) command.Invocation {
	return l.invocation(distro, env, "sh", "-lc", script)
}

// invocation builds `wsl -d <distro> args...`. Windows environment variables
// only cross into the distro when named in WSLENV, so overrides are listed there.
func (l *Launcher) invocation(distro string, env map[string]string, args ...string) command.Invocation {
	inv := command.New(l.program, append([]string{"-d", distro}, args...)...)
	if len(env) == 0 {
		return inv
	}
	shared := slices.Sorted(maps.Keys(env))
	if existing := os.Getenv("WSLENV"); existing != "" {
		shared = append([]string{existing}, shared...)
	}
	overrides := maps.Clone(env)
	overrides["WSLENV"] = strings.Join(shared, ":")
	return inv.WithEnv(overrides)
}
