// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/app"
)

func newDistrosCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "distros",
		Short: "List the installed WSL distros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.Config(cmd.Context())
			if err != nil {
				return a.configFailure(err)
			}
			names := app.NewService(a.Tools(cfg), nil).Distros(cmd.Context())
			if len(names) == 0 {
				fmt.Fprintln(a.stderr, WarningStyle.Render("No WSL distros found.")+" Install one with 'wsl --install -d Ubuntu'.")
				return nil
			}
			for _, n := range names {
				marker := "  "
				if n == cfg.Build.Distro {
					marker = SuccessStyle.Render("* ")
				}
				fmt.Fprintln(a.stdout, marker+n)
			}
			return nil
		},
	}
}
