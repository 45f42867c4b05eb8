// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
)

// Environment variables that carry explicit push credentials.
const (
	EnvAccessKeyID     = EnvPrefix + "_AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = EnvPrefix + "_AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = EnvPrefix + "_AWS_SESSION_TOKEN"
)

// Render returns cfg in the given format.
func Render(cfg *Config, format Format) (string, error) {
	if err := format.Validate(); err != nil {
		return "", err
	}
	switch format {
	case FormatTOML:
		out, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("failed to encode TOML: %w", err)
		}
		return string(out), nil
	case FormatYAML:
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML: %w", err)
		}
		return string(out), nil
	default:
		return GenerateCUE(cfg), nil
	}
}

// GenerateCUE generates a CUE representation of the configuration. Empty
// optional strings are omitted so the output validates against #Config.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// mxbuilder configuration\n\n")
	fmt.Fprintf(&sb, "container_engine: %q\n", cfg.ContainerEngine)

	writeBlock(&sb, "tools", []field{
		{"engine_binary", cfg.Tools.EngineBinary},
		{"cloud_binary", cfg.Tools.CloudBinary},
		{"launcher_binary", cfg.Tools.LauncherBinary},
	})
	writeBlock(&sb, "wsl", []field{{"mount_root", cfg.WSL.MountRoot}})
	writeBlock(&sb, "build", []field{
		{"buildpack_dir", cfg.Build.BuildpackDir},
		{"source_dir", cfg.Build.SourceDir},
		{"context_dir", cfg.Build.ContextDir},
		{"distro", cfg.Build.Distro},
		{"image", cfg.Build.Image},
		{"tag", cfg.Build.Tag},
		{"skip_base_images", cfg.Build.SkipBaseImages},
		{"runtime", cfg.Build.Runtime},
		{"min_runtime_version", cfg.Build.MinRuntimeVersion},
		{"label_revision", cfg.Build.LabelRevision},
		{"region", cfg.Build.Region},
	})
	writeBlock(&sb, "push", []field{
		{"account_id", cfg.Push.AccountID},
		{"repository", cfg.Push.Repository},
		{"region", cfg.Push.Region},
		{"credential_source", string(cfg.Push.CredentialSource)},
		{"remote_tag", cfg.Push.RemoteTag},
	})
	writeBlock(&sb, "events", []field{
		{"json", cfg.Events.JSON},
		{"nats_url", cfg.Events.NATSURL},
		{"nats_subject", cfg.Events.NATSSubject},
	})
	writeBlock(&sb, "ui", []field{
		{"verbose", cfg.UI.Verbose},
		{"color", string(cfg.UI.Color)},
	})

	return sb.String()
}

type field struct {
	key   string
	value any
}

func writeBlock(sb *strings.Builder, name string, fields []field) {
	var lines []string
	for _, f := range fields {
		switch v := f.value.(type) {
		case string:
			if v != "" {
				lines = append(lines, fmt.Sprintf("\t%s: %q", f.key, v))
			}
		case bool:
			lines = append(lines, fmt.Sprintf("\t%s: %v", f.key, v))
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s: {\n%s\n}\n", name, strings.Join(lines, "\n"))
}

// CredentialsFromEnv reads explicit push credentials from the MXBUILDER_AWS_*
// variables using lookup (os.Getenv in production).
func CredentialsFromEnv(lookup func(string) string) credentials.Explicit {
	return credentials.Explicit{
		AccessKeyID:     lookup(EnvAccessKeyID),
		SecretAccessKey: lookup(EnvSecretAccessKey),
		SessionToken:    lookup(EnvSessionToken),
	}
}
