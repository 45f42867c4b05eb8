// SPDX-License-Identifier: MPL-2.0

package container

import (
	"slices"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

// PodmanEngine implements the Engine interface using the Podman CLI.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a Podman engine running through runner. Builds use
// the Docker image format so HEALTHCHECK and SHELL instructions in the
// buildpack definitions are kept.
func NewPodmanEngine(runner *command.Runner, opts ...BaseCLIEngineOption) *PodmanEngine {
	allOpts := append([]BaseCLIEngineOption{WithBuildArgsTransformer(dockerFormat)}, opts...)
	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(string(EngineTypePodman), runner, allOpts...),
	}
}

func dockerFormat(args []string) []string {
	if len(args) == 0 || slices.Contains(args, "--format") {
		return args
	}
	return slices.Insert(slices.Clone(args), 1, "--format", "docker")
}
