// SPDX-License-Identifier: MPL-2.0

package container

import "github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"

// DockerEngine implements the Engine interface using the Docker CLI.
type DockerEngine struct {
	*BaseCLIEngine
}

// NewDockerEngine creates a Docker engine running through runner.
func NewDockerEngine(runner *command.Runner, opts ...BaseCLIEngineOption) *DockerEngine {
	return &DockerEngine{
		BaseCLIEngine: NewBaseCLIEngine(string(EngineTypeDocker), runner, opts...),
	}
}
