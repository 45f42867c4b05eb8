// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"maps"
	"slices"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

type (
	// BaseCLIEngine provides the argument builders and execution shared by the
	// Docker and Podman engines.
	BaseCLIEngine struct {
		name            string
		binary          string
		runner          *command.Runner
		cmdEnvOverrides map[string]string
		buildArgsXform  BuildArgsTransformer
	}

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BuildArgsTransformer rewrites build arguments for engine-specific flags.
	BuildArgsTransformer func(args []string) []string
)

// WithBinary overrides the executable (e.g. a full path to docker.exe).
func WithBinary(binary string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		if binary != "" {
			e.binary = binary
		}
	}
}

// WithCmdEnvOverride adds an environment override applied to every engine call.
func WithCmdEnvOverride(key, value string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		if e.cmdEnvOverrides == nil {
			e.cmdEnvOverrides = make(map[string]string)
		}
		e.cmdEnvOverrides[key] = value
	}
}

// WithCmdEnv adds every entry of env as an override.
func WithCmdEnv(env map[string]string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		for _, k := range slices.Sorted(maps.Keys(env)) {
			WithCmdEnvOverride(k, env[k])(e)
		}
	}
}

// WithBuildArgsTransformer sets an engine-specific build argument rewrite.
func WithBuildArgsTransformer(fn BuildArgsTransformer) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.buildArgsXform = fn
	}
}

// NewBaseCLIEngine creates a base engine named name whose default executable
// is also name.
func NewBaseCLIEngine(name string, runner *command.Runner, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{name: name, binary: name, runner: runner}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name.
func (e *BaseCLIEngine) Name() string {
	return e.name
}

// Binary returns the executable.
func (e *BaseCLIEngine) Binary() string {
	return e.binary
}

// --- Argument Builders ---

// BuildArgs returns `build -t <tag> [-f <dockerfile>] [--label k=v]... <context>`.
func (e *BaseCLIEngine) BuildArgs(opts BuildOptions) []string {
	args := []string{"build", "-t", opts.Tag}
	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}
	for _, k := range slices.Sorted(maps.Keys(opts.Labels)) {
		args = append(args, "--label", k+"="+opts.Labels[k])
	}
	args = append(args, opts.ContextDir)
	if e.buildArgsXform != nil {
		args = e.buildArgsXform(args)
	}
	return args
}

// ImageListArgs returns `image ls -q <ref>`.
func (e *BaseCLIEngine) ImageListArgs(ref string) []string {
	return []string{"image", "ls", "-q", ref}
}

// TagArgs returns `tag <source> <target>`.
func (e *BaseCLIEngine) TagArgs(source, target string) []string {
	return []string{"tag", source, target}
}

// PushArgs returns `push <ref>`.
func (e *BaseCLIEngine) PushArgs(ref string) []string {
	return []string{"push", ref}
}

// LoginArgs returns `login --username <user> --password-stdin <registry>`.
// The password is never an argument.
func (e *BaseCLIEngine) LoginArgs(registry, username string) []string {
	return []string{"login", "--username", username, "--password-stdin", registry}
}

// --- Command Execution ---

// Invocation returns the engine invocation for args with engine-level
// overrides applied.
func (e *BaseCLIEngine) Invocation(args ...string) command.Invocation {
	return command.New(e.binary, args...).WithEnv(e.cmdEnvOverrides)
}

// RunCommandStatus executes an engine command with output streamed.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	return e.runner.Run(ctx, e.Invocation(args...))
}

// RunCommandWithOutput executes an engine command and returns its trimmed stdout.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	return e.runner.Output(ctx, e.Invocation(args...))
}

// --- Promoted Engine Methods (shared by Docker and Podman) ---

// Build builds an image. It validates BuildOptions before executing.
func (e *BaseCLIEngine) Build(ctx context.Context, opts BuildOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	inv := e.Invocation(e.BuildArgs(opts)...)
	inv.Dir = opts.Dir
	return e.runner.Run(ctx, inv)
}

// ImageIDs returns the trimmed `image ls -q` output for ref.
func (e *BaseCLIEngine) ImageIDs(ctx context.Context, ref string) (string, error) {
	return e.RunCommandWithOutput(ctx, e.ImageListArgs(ref)...)
}

// Tag adds target as a name for source.
func (e *BaseCLIEngine) Tag(ctx context.Context, source, target string) error {
	return e.RunCommandStatus(ctx, e.TagArgs(source, target)...)
}

// Push uploads ref.
func (e *BaseCLIEngine) Push(ctx context.Context, ref string) error {
	return e.RunCommandStatus(ctx, e.PushArgs(ref)...)
}

// Login authenticates with registry. The password travels on stdin only.
func (e *BaseCLIEngine) Login(ctx context.Context, registry, username, password string) error {
	inv := e.Invocation(e.LoginArgs(registry, username)...).WithStdin(password)
	return e.runner.Run(ctx, inv)
}
