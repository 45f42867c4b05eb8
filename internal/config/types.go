// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/container"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
)

const (
	// ColorAuto colors output when stderr is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces colored output.
	ColorAlways ColorMode = "always"
	// ColorNever disables colored output.
	ColorNever ColorMode = "never"

	FormatCUE  Format = "cue"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("invalid config format")
)

type (
	// ColorMode controls terminal colors.
	ColorMode string

	// Format is a rendering format for `config show`.
	Format string

	// Config is the complete application configuration.
	Config struct {
		ContainerEngine container.EngineType `mapstructure:"container_engine" toml:"container_engine" yaml:"container_engine"`
		Tools           ToolsConfig          `mapstructure:"tools" toml:"tools" yaml:"tools"`
		WSL             WSLConfig            `mapstructure:"wsl" toml:"wsl" yaml:"wsl"`
		Build           BuildConfig          `mapstructure:"build" toml:"build" yaml:"build"`
		Push            PushConfig           `mapstructure:"push" toml:"push" yaml:"push"`
		Events          EventsConfig         `mapstructure:"events" toml:"events" yaml:"events"`
		UI              UIConfig             `mapstructure:"ui" toml:"ui" yaml:"ui"`
	}

	// ToolsConfig overrides the executables. Empty means the name on PATH.
	ToolsConfig struct {
		EngineBinary   string `mapstructure:"engine_binary" toml:"engine_binary" yaml:"engine_binary"`
		CloudBinary    string `mapstructure:"cloud_binary" toml:"cloud_binary" yaml:"cloud_binary"`
		LauncherBinary string `mapstructure:"launcher_binary" toml:"launcher_binary" yaml:"launcher_binary"`
	}

	// WSLConfig configures host path translation.
	WSLConfig struct {
		MountRoot string `mapstructure:"mount_root" toml:"mount_root" yaml:"mount_root"`
	}

	// BuildConfig holds the build defaults.
	BuildConfig struct {
		BuildpackDir      string `mapstructure:"buildpack_dir" toml:"buildpack_dir" yaml:"buildpack_dir"`
		SourceDir         string `mapstructure:"source_dir" toml:"source_dir" yaml:"source_dir"`
		ContextDir        string `mapstructure:"context_dir" toml:"context_dir" yaml:"context_dir"`
		Distro            string `mapstructure:"distro" toml:"distro" yaml:"distro"`
		Image             string `mapstructure:"image" toml:"image" yaml:"image"`
		Tag               string `mapstructure:"tag" toml:"tag" yaml:"tag"`
		SkipBaseImages    bool   `mapstructure:"skip_base_images" toml:"skip_base_images" yaml:"skip_base_images"`
		Runtime           string `mapstructure:"runtime" toml:"runtime" yaml:"runtime"`
		MinRuntimeVersion string `mapstructure:"min_runtime_version" toml:"min_runtime_version" yaml:"min_runtime_version"`
		LabelRevision     bool   `mapstructure:"label_revision" toml:"label_revision" yaml:"label_revision"`
		Region            string `mapstructure:"region" toml:"region" yaml:"region"`
	}

	// PushConfig holds the push defaults. Explicit credentials are never part
	// of it.
	PushConfig struct {
		AccountID        string             `mapstructure:"account_id" toml:"account_id" yaml:"account_id"`
		Repository       string             `mapstructure:"repository" toml:"repository" yaml:"repository"`
		Region           string             `mapstructure:"region" toml:"region" yaml:"region"`
		CredentialSource credentials.Source `mapstructure:"credential_source" toml:"credential_source" yaml:"credential_source"`
		RemoteTag        string             `mapstructure:"remote_tag" toml:"remote_tag" yaml:"remote_tag"`
	}

	// EventsConfig selects additional event sinks.
	EventsConfig struct {
		// JSON is a file that receives every event as a JSON line.
		JSON        string `mapstructure:"json" toml:"json" yaml:"json"`
		NATSURL     string `mapstructure:"nats_url" toml:"nats_url" yaml:"nats_url"`
		NATSSubject string `mapstructure:"nats_subject" toml:"nats_subject" yaml:"nats_subject"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose bool      `mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
		Color   ColorMode `mapstructure:"color" toml:"color" yaml:"color"`
	}

	// InvalidConfigError is returned when a decoded value fails validation.
	InvalidConfigError struct {
		Key    string
		Reason string
	}
)

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: container.EngineTypeDocker,
		WSL:             WSLConfig{MountRoot: "/mnt/"},
		Build: BuildConfig{
			Image:   "ample2",
			Tag:     "local",
			Runtime: "python3",
		},
		Push: PushConfig{
			Region:           "ap-south-1",
			CredentialSource: credentials.SourceAmbient,
			RemoteTag:        "latest",
		},
		Events: EventsConfig{NATSSubject: "mxbuilder.events"},
		UI:     UIConfig{Color: ColorAuto},
	}
}

// Validate checks values that may have come from the environment, which the
// schema never sees.
func (c *Config) Validate() error {
	if err := c.ContainerEngine.Validate(); err != nil {
		return &InvalidConfigError{Key: "container_engine", Reason: err.Error()}
	}
	if err := c.Push.CredentialSource.Validate(); err != nil {
		return &InvalidConfigError{Key: "push.credential_source", Reason: err.Error()}
	}
	if err := c.UI.Color.Validate(); err != nil {
		return &InvalidConfigError{Key: "ui.color", Reason: err.Error()}
	}
	if !strings.HasPrefix(c.WSL.MountRoot, "/") {
		return &InvalidConfigError{Key: "wsl.mount_root", Reason: "must be an absolute path"}
	}
	return nil
}

// Validate returns an error if the mode is not recognized.
func (m ColorMode) Validate() error {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", m)
	}
}

// Validate returns an error if the format is not recognized.
func (f Format) Validate() error {
	switch f {
	case FormatCUE, FormatTOML, FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: cue, toml, yaml)", ErrInvalidFormat, f)
	}
}
