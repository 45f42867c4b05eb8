// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/app"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
)

type buildFlags struct {
	buildpack, source, contextDir string
	distro, image, tag            string
	region, runtime, minRuntime   string
	skipBaseImages, labelRevision bool
}

func newBuildCommand(app *App) *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the project and build the final image",
		Long: `Compile a Mendix v6 project with the buildpack inside a WSL distro and
build the final container image.

Steps: ValidateTools, ValidateEnvironment, ProbeRuntime,
ConditionalBaseImages (unless --skip-base-images), Compile, BuildFinalImage.
The first failing step ends the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, app, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.buildpack, "buildpack", "", "cf-mendix-buildpack directory (build.buildpack_dir)")
	fl.StringVar(&f.source, "source", "", "Mendix project directory (build.source_dir)")
	fl.StringVar(&f.contextDir, "context", "", "build context output directory (build.context_dir)")
	fl.StringVar(&f.distro, "distro", "", "WSL distro to compile in (build.distro)")
	fl.StringVar(&f.image, "image", "", "image name (build.image)")
	fl.StringVar(&f.tag, "tag", "", "image tag (build.tag)")
	fl.BoolVar(&f.skipBaseImages, "skip-base-images", false, "do not check or build the mendix-rootfs base images")
	fl.StringVar(&f.region, "region", "", "export AWS_DEFAULT_REGION to every build command (build.region)")
	fl.StringVar(&f.runtime, "runtime", "", "program that runs build.py (build.runtime)")
	fl.StringVar(&f.minRuntime, "min-runtime-version", "", "lowest accepted runtime version (build.min_runtime_version)")
	fl.BoolVar(&f.labelRevision, "label-revision", false, "label the image with the source git commit")
	return cmd
}

func runBuild(cmd *cobra.Command, a *App, f buildFlags) error {
	cfg, err := a.Config(cmd.Context())
	if err != nil {
		return a.configFailure(err)
	}

	b := cfg.Build
	fl := cmd.Flags()
	bc := pipeline.BuildConfig{
		BuildpackDir:      pick(fl.Changed("buildpack"), f.buildpack, b.BuildpackDir),
		SourceDir:         pick(fl.Changed("source"), f.source, b.SourceDir),
		ContextDir:        pick(fl.Changed("context"), f.contextDir, b.ContextDir),
		Distro:            pick(fl.Changed("distro"), f.distro, b.Distro),
		ImageName:         pick(fl.Changed("image"), f.image, b.Image),
		ImageTag:          pick(fl.Changed("tag"), f.tag, b.Tag),
		SkipBaseImages:    pick(fl.Changed("skip-base-images"), f.skipBaseImages, b.SkipBaseImages),
		Region:            pick(fl.Changed("region"), f.region, b.Region),
		Runtime:           pick(fl.Changed("runtime"), f.runtime, b.Runtime),
		MinRuntimeVersion: pick(fl.Changed("min-runtime-version"), f.minRuntime, b.MinRuntimeVersion),
		LabelRevision:     pick(fl.Changed("label-revision"), f.labelRevision, b.LabelRevision),
	}
	return a.runPipeline(cmd, cfg, "build image", func(ctx context.Context, svc *app.Service) (*app.Run, error) {
		return svc.StartBuild(ctx, bc)
	})
}

// pick returns the flag value when the flag was set, else the configured one.
func pick[T any](changed bool, flagValue, configured T) T {
	if changed {
		return flagValue
	}
	return configured
}
