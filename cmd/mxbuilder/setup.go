// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/app"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
)

func newSetupCommand(a *App) *cobra.Command {
	var (
		distro   string
		packages []string
	)
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install the build runtime inside a WSL distro",
		Long: `Run apt-get update and install python3 and python3-pip inside the
selected distro, then check that python3 runs. Requires sudo inside the distro.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.Config(cmd.Context())
			if err != nil {
				return a.configFailure(err)
			}
			pc := pipeline.ProvisionConfig{
				Distro:   pick(cmd.Flags().Changed("distro"), distro, cfg.Build.Distro),
				Packages: packages,
				Runtime:  cfg.Build.Runtime,
			}
			return a.runPipeline(cmd, cfg, "set up distro", func(ctx context.Context, svc *app.Service) (*app.Run, error) {
				return svc.StartProvision(ctx, pc)
			})
		},
	}
	cmd.Flags().StringVar(&distro, "distro", "", "WSL distro to set up (build.distro)")
	cmd.Flags().StringSliceVar(&packages, "package", nil, "apt package to install (repeatable; default python3, python3-pip)")
	return cmd
}
