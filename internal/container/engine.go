// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// ErrInvalidEngineType is the sentinel wrapped by InvalidEngineTypeError.
var ErrInvalidEngineType = errors.New("invalid container engine type")

type (
	// EngineType identifies the container engine CLI.
	EngineType string

	// InvalidEngineTypeError is returned when an EngineType is not recognized.
	InvalidEngineTypeError struct {
		Value EngineType
	}

	// Engine defines the image operations the pipelines use.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Binary returns the executable invoked for every operation.
		Binary() string
		// Build builds an image.
		Build(ctx context.Context, opts BuildOptions) error
		// ImageIDs lists the IDs of local images matching ref.
		ImageIDs(ctx context.Context, ref string) (string, error)
		// Tag adds target as a name for source.
		Tag(ctx context.Context, source, target string) error
		// Push uploads ref to its registry.
		Push(ctx context.Context, ref string) error
		// Login authenticates with registry, passing password on stdin.
		Login(ctx context.Context, registry, username, password string) error
	}

	// BuildOptions contains options for building an image.
	BuildOptions struct {
		// ContextDir is the build context directory.
		ContextDir string
		// Dockerfile is the build definition path, relative to Dir when Dir is
		// set. Empty means the engine default.
		Dockerfile string
		// Dir is the working directory of the engine process (optional).
		Dir string
		// Tag is the image reference to assign.
		Tag string
		// Labels are added with --label, in sorted key order.
		Labels map[string]string
	}
)

func (e *InvalidEngineTypeError) Error() string {
	return fmt.Sprintf("invalid container engine type %q (valid: docker, podman)", e.Value)
}

// Unwrap returns ErrInvalidEngineType for errors.Is() compatibility.
func (e *InvalidEngineTypeError) Unwrap() error { return ErrInvalidEngineType }

// Validate returns an error if the engine type is not recognized.
func (t EngineType) Validate() error {
	switch t {
	case EngineTypeDocker, EngineTypePodman:
		return nil
	default:
		return &InvalidEngineTypeError{Value: t}
	}
}

// Validate returns an error if required fields are missing.
func (o BuildOptions) Validate() error {
	if o.ContextDir == "" {
		return errors.New("build context directory is required")
	}
	if o.Tag == "" {
		return errors.New("image tag is required")
	}
	return nil
}

// NewEngine creates the engine for engineType. Unlike auto-detection, the
// caller's choice is final: tool availability is checked by the pipelines.
func NewEngine(engineType EngineType, runner *command.Runner, opts ...BaseCLIEngineOption) (Engine, error) {
	if err := engineType.Validate(); err != nil {
		return nil, err
	}
	if engineType == EngineTypePodman {
		return NewPodmanEngine(runner, opts...), nil
	}
	return NewDockerEngine(runner, opts...), nil
}
