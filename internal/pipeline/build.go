// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/container"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/imageref"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wsl"
)

// DefaultRuntime is the program that runs the buildpack's build script.
const DefaultRuntime = "python3"

// BaseImage is a prerequisite image built from a definition file in the
// buildpack directory.
type BaseImage struct {
	Tag        string
	Dockerfile string
}

// BaseImages are built in this order when absent.
var BaseImages = []BaseImage{
	{Tag: "mendix-rootfs:app", Dockerfile: "rootfs-app.dockerfile"},
	{Tag: "mendix-rootfs:builder", Dockerfile: "rootfs-builder.dockerfile"},
}

type (
	// BuildConfig describes one build run. Directories are host paths.
	BuildConfig struct {
		BuildpackDir   string
		SourceDir      string
		ContextDir     string
		Distro         string
		ImageName      string
		ImageTag       string
		SkipBaseImages bool

		// Region, when set, is exported as AWS_DEFAULT_REGION to every command.
		Region string
		// Runtime defaults to DefaultRuntime.
		Runtime string
		// MinRuntimeVersion, when set, is the lowest accepted runtime version.
		MinRuntimeVersion string
		// LabelRevision adds the source commit as an image label when the
		// source directory is a git work tree.
		LabelRevision bool
	}

	// Build compiles a Mendix project inside a WSL distro and packages the
	// result as a container image.
	Build struct {
		cfg   BuildConfig
		tools Tools
	}
)

// NewBuild creates a build pipeline.
func NewBuild(cfg BuildConfig, tools Tools) *Build {
	return &Build{cfg: cfg, tools: tools.WithDefaults()}
}

// Name implements Pipeline.
func (b *Build) Name() events.Pipeline { return events.PipelineBuild }

// Config returns the build configuration.
func (b *Build) Config() BuildConfig { return b.cfg }

// Validate implements Pipeline.
func (b *Build) Validate() error {
	dirs := []struct{ field, path string }{
		{"buildpack_dir", b.cfg.BuildpackDir},
		{"source_dir", b.cfg.SourceDir},
		{"context_dir", b.cfg.ContextDir},
	}
	for _, d := range dirs {
		if strings.TrimSpace(d.path) == "" {
			return &InvalidConfigError{Field: d.field, Reason: "directory is required"}
		}
		if err := b.tools.StatDir(d.path); err != nil {
			return &InvalidConfigError{Field: d.field, Reason: err.Error()}
		}
	}
	if _, err := imageref.New(b.cfg.ImageName, b.cfg.ImageTag); err != nil {
		return &InvalidConfigError{Field: "image", Reason: err.Error()}
	}
	if err := b.tools.EngineType.Validate(); err != nil {
		return &InvalidConfigError{Field: "container_engine", Reason: err.Error()}
	}
	if b.cfg.MinRuntimeVersion != "" {
		if _, err := semver.NewVersion(b.cfg.MinRuntimeVersion); err != nil {
			return &InvalidConfigError{Field: "min_runtime_version", Reason: err.Error()}
		}
	}
	return nil
}

// Execute implements Pipeline.
func (b *Build) Execute(ctx context.Context, em *events.Emitter) *Result {
	seq := newSequence(em, b.tools.Executor)
	cfg := b.cfg
	runtime := cfg.Runtime
	if runtime == "" {
		runtime = DefaultRuntime
	}
	var env map[string]string
	if r := strings.TrimSpace(cfg.Region); r != "" {
		env = map[string]string{credentials.EnvDefaultRegion: r}
	}

	launcher := wsl.NewLauncher(seq.runner, b.tools.LauncherBinary)
	engine, err := b.tools.engine(seq.runner, env)
	var ref imageref.Reference
	if err == nil {
		ref, err = imageref.New(cfg.ImageName, cfg.ImageTag)
	}
	if err != nil {
		// Only reachable when Execute is called without Validate.
		setupErr := &InvalidConfigError{Field: "build", Reason: err.Error()}
		return seq.run(ctx, []step{{StepValidateTools, func(context.Context) error { return setupErr }}})
	}
	cache := container.NewImageCache(engine)
	var distro string

	steps := []step{
		{StepValidateTools, func(context.Context) error {
			return seq.runner.Require(b.tools.EngineBinary, b.tools.CloudBinary, b.tools.LauncherBinary)
		}},
		{StepValidateEnvironment, func(ctx context.Context) error {
			distro, err = launcher.Validate(ctx, cfg.Distro)
			return err
		}},
		{StepProbeRuntime, func(ctx context.Context) error {
			return b.probeRuntime(ctx, seq, launcher, distro, runtime, env)
		}},
	}
	if !cfg.SkipBaseImages {
		steps = append(steps, step{StepConditionalBaseImages, func(ctx context.Context) error {
			return b.baseImages(ctx, seq, engine, cache)
		}})
	}
	steps = append(steps,
		step{StepCompile, func(ctx context.Context) error {
			return b.compile(ctx, launcher, distro, runtime, env)
		}},
		step{StepBuildFinalImage, func(ctx context.Context) error {
			return engine.Build(ctx, container.BuildOptions{
				ContextDir: cfg.ContextDir,
				Tag:        ref.Local(),
				Labels:     b.labels(),
			})
		}},
	)
	return seq.run(ctx, steps)
}

func (b *Build) probeRuntime(ctx context.Context, seq *sequence, launcher *wsl.Launcher, distro, runtime string, env map[string]string) error {
	banner, err := launcher.Probe(ctx, distro, runtime, env)
	if err != nil {
		return err
	}
	if banner != "" {
		seq.info(banner)
	}
	if b.cfg.MinRuntimeVersion == "" {
		return nil
	}
	minimum, err := semver.NewVersion(b.cfg.MinRuntimeVersion)
	if err != nil {
		return err
	}
	reason, err := checkMinVersion(banner, minimum)
	if err != nil {
		return &wsl.RuntimeUnavailableError{Distro: distro, Program: runtime, Reason: "cannot determine version", Cause: err}
	}
	if reason != "" {
		return &wsl.RuntimeUnavailableError{Distro: distro, Program: runtime, Reason: reason}
	}
	return nil
}

// baseImages builds each base image at most once: an existing tag is kept.
func (b *Build) baseImages(ctx context.Context, seq *sequence, engine container.Engine, cache *container.ImageCache) error {
	for _, img := range BaseImages {
		if cache.Exists(ctx, img.Tag) {
			seq.skip(fmt.Sprintf("%s already exists", img.Tag))
			continue
		}
		err := engine.Build(ctx, container.BuildOptions{
			Dir:        b.cfg.BuildpackDir,
			Dockerfile: img.Dockerfile,
			ContextDir: ".",
			Tag:        img.Tag,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Build) compile(ctx context.Context, launcher *wsl.Launcher, distro, runtime string, env map[string]string) error {
	paths, err := b.tools.Translator.ToEnvironmentAll(b.cfg.BuildpackDir, b.cfg.SourceDir, b.cfg.ContextDir)
	if err != nil {
		return err
	}
	return launcher.Shell(ctx, distro, CompileScript(runtime, paths[0], paths[1], paths[2]), env)
}

// CompileScript returns the shell script that runs the buildpack's build
// script. All paths are in the distro's namespace.
func CompileScript(runtime, buildpack, source, destination string) string {
	return fmt.Sprintf("cd %s && %s ./build.py --source %s --destination %s build-mda-dir",
		command.Quote(buildpack), runtime, command.Quote(source), command.Quote(destination))
}

func (b *Build) labels() map[string]string {
	if !b.cfg.LabelRevision {
		return nil
	}
	rev, err := b.tools.Revision(b.cfg.SourceDir)
	if err != nil || rev == "" {
		return nil
	}
	return map[string]string{RevisionLabel: rev}
}
