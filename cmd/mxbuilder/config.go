// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/config"
)

// newConfigCommand creates the `mxbuilder config` command tree.
func newConfigCommand(a *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mxbuilder configuration",
		Long: `Manage mxbuilder configuration.

Configuration is read from config.cue in the user configuration directory
(see 'mxbuilder config path'), then ./config.cue. Every key can be overridden
with an MXBUILDER_ environment variable, e.g. MXBUILDER_PUSH_REGION.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.Format(format)
			if err := f.Validate(); err != nil {
				return err
			}
			cfg, err := a.Config(cmd.Context())
			if err != nil {
				return a.configFailure(err)
			}
			out, err := config.Render(cfg, f)
			if err != nil {
				return err
			}
			source := a.ConfigPath()
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintln(a.stderr, CmdStyle.Render("Config file")+": "+source)
			fmt.Fprint(a.stdout, out)
			return nil
		},
	}
	show.Flags().StringVar(&format, "format", string(config.FormatCUE), "output format: cue, toml or yaml")
	cfgCmd.AddCommand(show)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.defaultConfigPath()
			wrote, err := config.WriteDefault(path)
			if err != nil {
				return err
			}
			if !wrote {
				fmt.Fprintln(a.stdout, WarningStyle.Render("Config file already exists: ")+path)
				return nil
			}
			fmt.Fprintln(a.stdout, SuccessStyle.Render("Created ")+path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, a.defaultConfigPath())
			return nil
		},
	})

	return cfgCmd
}

func (a *App) defaultConfigPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.FilePath(a.configDir)
}

// configFailure renders a configuration load error.
func (a *App) configFailure(err error) error {
	logger := a.Logger(nil)
	return renderFailure(a.stderr, logger, actionable("load configuration", err), a.verbose, glamourStyle(nil))
}
