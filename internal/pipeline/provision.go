// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"strings"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wsl"
)

// DefaultPackages are installed by a provision run.
var DefaultPackages = []string{"python3", "python3-pip"}

type (
	// ProvisionConfig describes one provision run.
	ProvisionConfig struct {
		Distro string
		// Packages defaults to DefaultPackages.
		Packages []string
		// Runtime defaults to DefaultRuntime.
		Runtime string
	}

	// Provision installs the build runtime inside a WSL distro.
	Provision struct {
		cfg   ProvisionConfig
		tools Tools
	}
)

// NewProvision creates a provision pipeline.
func NewProvision(cfg ProvisionConfig, tools Tools) *Provision {
	return &Provision{cfg: cfg, tools: tools.WithDefaults()}
}

// Name implements Pipeline.
func (p *Provision) Name() events.Pipeline { return events.PipelineProvision }

// Validate implements Pipeline.
func (p *Provision) Validate() error {
	for _, pkg := range p.cfg.Packages {
		if strings.TrimSpace(pkg) == "" {
			return &InvalidConfigError{Field: "packages", Reason: "package names must not be empty"}
		}
	}
	return nil
}

// Execute implements Pipeline.
func (p *Provision) Execute(ctx context.Context, em *events.Emitter) *Result {
	seq := newSequence(em, p.tools.Executor)
	launcher := wsl.NewLauncher(seq.runner, p.tools.LauncherBinary)
	packages := p.cfg.Packages
	if len(packages) == 0 {
		packages = DefaultPackages
	}
	runtime := p.cfg.Runtime
	if runtime == "" {
		runtime = DefaultRuntime
	}
	var distro string

	return seq.run(ctx, []step{
		{StepValidateTools, func(context.Context) error {
			return seq.runner.Require(p.tools.LauncherBinary)
		}},
		{StepValidateEnvironment, func(ctx context.Context) error {
			var err error
			distro, err = launcher.Validate(ctx, p.cfg.Distro)
			return err
		}},
		{StepUpdatePackages, func(ctx context.Context) error {
			return launcher.Shell(ctx, distro, "sudo apt-get update", nil)
		}},
		{StepInstallRuntime, func(ctx context.Context) error {
			return launcher.Shell(ctx, distro, InstallScript(packages), nil)
		}},
		{StepProbeRuntime, func(ctx context.Context) error {
			banner, err := launcher.Probe(ctx, distro, runtime, nil)
			if err != nil {
				return err
			}
			if banner != "" {
				seq.info(banner)
			}
			return nil
		}},
	})
}

// InstallScript returns the apt-get command installing packages.
func InstallScript(packages []string) string {
	quoted := make([]string, len(packages))
	for i, p := range packages {
		quoted[i] = command.Quote(strings.TrimSpace(p))
	}
	return "sudo apt-get install -y " + strings.Join(quoted, " ")
}
