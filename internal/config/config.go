// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "mxbuilder"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MXBUILDER"

	maxFileSize = 1 << 20
)

//go:embed schema.cue
var configSchema string

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Dir returns the configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FilePath returns the default config file path inside dir, or inside Dir
// when dir is empty.
func FilePath(dir string) string {
	if dir == "" {
		dir = Dir()
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// Load reads the configuration. It returns the file that was used, which is
// empty when only defaults and environment applied.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'mxbuilder config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		for _, candidate := range []string{FilePath(opts.ConfigDirPath), ConfigFileName + "." + ConfigFileExt} {
			if fileExists(candidate) {
				resolvedPath = candidate
				break
			}
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'mxbuilder config show' for the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check MXBUILDER_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}
	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("container_engine", string(d.ContainerEngine))
	v.SetDefault("tools.engine_binary", d.Tools.EngineBinary)
	v.SetDefault("tools.cloud_binary", d.Tools.CloudBinary)
	v.SetDefault("tools.launcher_binary", d.Tools.LauncherBinary)
	v.SetDefault("wsl.mount_root", d.WSL.MountRoot)
	v.SetDefault("build.buildpack_dir", d.Build.BuildpackDir)
	v.SetDefault("build.source_dir", d.Build.SourceDir)
	v.SetDefault("build.context_dir", d.Build.ContextDir)
	v.SetDefault("build.distro", d.Build.Distro)
	v.SetDefault("build.image", d.Build.Image)
	v.SetDefault("build.tag", d.Build.Tag)
	v.SetDefault("build.skip_base_images", d.Build.SkipBaseImages)
	v.SetDefault("build.runtime", d.Build.Runtime)
	v.SetDefault("build.min_runtime_version", d.Build.MinRuntimeVersion)
	v.SetDefault("build.label_revision", d.Build.LabelRevision)
	v.SetDefault("build.region", d.Build.Region)
	v.SetDefault("push.account_id", d.Push.AccountID)
	v.SetDefault("push.repository", d.Push.Repository)
	v.SetDefault("push.region", d.Push.Region)
	v.SetDefault("push.credential_source", string(d.Push.CredentialSource))
	v.SetDefault("push.remote_tag", d.Push.RemoteTag)
	v.SetDefault("events.json", d.Events.JSON)
	v.SetDefault("events.nats_url", d.Events.NATSURL)
	v.SetDefault("events.nats_subject", d.Events.NATSSubject)
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("ui.color", string(d.UI.Color))
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Fields are optional, so validation does
// not require concrete values.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := checkFileSize(data, maxFileSize, path); err != nil {
		return err
	}

	configMap, err := decodeCUE(data, path)
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// decodeCUE validates data against #Config and decodes it to a map.
func decodeCUE(data []byte, path string) (map[string]any, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err, path)
	}
	return configMap, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteDefault writes the default configuration to path unless a file is
// already there. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if fileExists(path) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
