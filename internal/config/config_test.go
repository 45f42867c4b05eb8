// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/container"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(FilePath(dir), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	want := DefaultConfig()
	if cfg.ContainerEngine != container.EngineTypeDocker || cfg.Build.Image != want.Build.Image ||
		cfg.Build.Tag != "local" || cfg.Push.Region != "ap-south-1" ||
		cfg.Push.CredentialSource != credentials.SourceAmbient || cfg.Push.RemoteTag != "latest" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
container_engine: "podman"
build: {
	buildpack_dir: "C:\\mx\\buildpack"
	distro: "Ubuntu-22.04"
	skip_base_images: true
}
push: {
	account_id: "123456789012"
	repository: "app"
}
`)
	cfg, path, err := Load(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != FilePath(dir) {
		t.Errorf("path = %q", path)
	}
	if cfg.ContainerEngine != container.EngineTypePodman {
		t.Errorf("ContainerEngine = %q", cfg.ContainerEngine)
	}
	if cfg.Build.BuildpackDir != `C:\mx\buildpack` || cfg.Build.Distro != "Ubuntu-22.04" || !cfg.Build.SkipBaseImages {
		t.Errorf("Build = %+v", cfg.Build)
	}
	if cfg.Build.Image != "ample2" {
		t.Errorf("unset key lost its default: Image = %q", cfg.Build.Image)
	}
	if cfg.Push.AccountID != "123456789012" || cfg.Push.Region != "ap-south-1" {
		t.Errorf("Push = %+v", cfg.Push)
	}
}

func TestLoad_RejectsInvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown engine", `container_engine: "nerdctl"`, "container_engine"},
		{"credentials in file", `push: access_key_id: "AKIA"`, "access_key_id"},
		{"short account", `push: account_id: "1234"`, "account_id"},
		{"wrong type", `build: skip_base_images: "yes"`, "skip_base_images"},
		{"syntax", `build: {`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeConfig(t, tt.content)
			_, _, err := Load(t.Context(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	_, _, err := Load(t.Context(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := contextWithCancel(t)
	cancel()
	if _, _, err := Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Error("Load() with a canceled context should fail")
	}
}

//nolint:paralleltest // t.Setenv
func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MXBUILDER_PUSH_REGION", "eu-west-1")
	t.Setenv("MXBUILDER_BUILD_SKIP_BASE_IMAGES", "true")
	dir := writeConfig(t, `push: region: "us-east-1"`)

	cfg, _, err := Load(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Push.Region != "eu-west-1" {
		t.Errorf("Region = %q, want the environment value", cfg.Push.Region)
	}
	if !cfg.Build.SkipBaseImages {
		t.Error("SkipBaseImages not read from the environment")
	}
}

//nolint:paralleltest // t.Setenv
func TestLoad_EnvironmentValidated(t *testing.T) {
	t.Setenv("MXBUILDER_CONTAINER_ENGINE", "containerd")

	_, _, err := Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerateCUE_ValidatesAgainstSchema(t *testing.T) {
	t.Parallel()

	full := DefaultConfig()
	full.Build.BuildpackDir = `C:\mx\buildpack`
	full.Build.Distro = "Ubuntu-22.04"
	full.Build.MinRuntimeVersion = "3.6"
	full.Push.AccountID = "123456789012"
	full.Push.Repository = "team/app"
	full.Events.NATSURL = "nats://127.0.0.1:4222"

	for name, cfg := range map[string]*Config{"defaults": DefaultConfig(), "populated": full} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := decodeCUE([]byte(GenerateCUE(cfg)), "generated.cue")
			if err != nil {
				t.Fatalf("generated CUE invalid: %v\n%s", err, GenerateCUE(cfg))
			}
			if _, ok := m["push"]; !ok {
				t.Errorf("push block missing: %v", m)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := FilePath(filepath.Join(t.TempDir(), "nested"))
	wrote, err := WriteDefault(path)
	if err != nil || !wrote {
		t.Fatalf("WriteDefault() = %v, %v", wrote, err)
	}
	wrote, err = WriteDefault(path)
	if err != nil || wrote {
		t.Errorf("second WriteDefault() = %v, %v; want no overwrite", wrote, err)
	}

	cfg, used, err := Load(t.Context(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if used != path || cfg.Build.Image != "ample2" {
		t.Errorf("Load() = %+v from %q", cfg, used)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tests := []struct {
		format Format
		want   []string
	}{
		{FormatCUE, []string{`container_engine: "docker"`, `region: "ap-south-1"`}},
		{FormatTOML, []string{"[push]", "ap-south-1", "container_engine"}},
		{FormatYAML, []string{"push:", "region: ap-south-1", "container_engine: docker"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			out, err := Render(cfg, tt.format)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	if _, err := Render(cfg, "json"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Render(json) error = %v", err)
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"MXBUILDER_AWS_ACCESS_KEY_ID":     "AKIA",
		"MXBUILDER_AWS_SECRET_ACCESS_KEY": "secret",
	}
	got := CredentialsFromEnv(func(k string) string { return env[k] })
	if got.AccessKeyID != "AKIA" || got.SecretAccessKey != "secret" || got.SessionToken != "" {
		t.Errorf("CredentialsFromEnv() = %#v", got)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"#Config", "push", "account_id"}, "push.account_id"},
		{[]string{"events", "0", "x"}, "events[0].x"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func contextWithCancel(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithCancel(t.Context())
}
