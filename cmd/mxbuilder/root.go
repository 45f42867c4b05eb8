// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mxbuilder",
		Short: "Build Mendix v6 projects into container images and push them to ECR",
		Long: TitleStyle.Render("mxbuilder") + SubtitleStyle.Render(" - Mendix v6 image builder") + `

mxbuilder compiles a Mendix v6 project with the cf-mendix-buildpack inside a
WSL distro, packages the result as a container image and pushes it to an
Amazon ECR repository.

` + SubtitleStyle.Render("Examples:") + `
  mxbuilder distros                 List the installed WSL distros
  mxbuilder setup --distro Ubuntu   Install python3 in a distro
  mxbuilder build --distro Ubuntu   Build ample2:local
  mxbuilder push --account-id 123456789012 --repository app`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mxbuilder/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.eventsJSON, "events-json", "", "also write every pipeline event as a JSON line to this file")

	rootCmd.AddCommand(
		newBuildCommand(app),
		newPushCommand(app),
		newSetupCommand(app),
		newDistrosCommand(app),
		newConfigCommand(app),
		newVersionCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting code. An
// interrupt is left to its default behaviour so child processes stop with
// the tool.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
	); err != nil {
		if exitErr, ok := errors.AsType[*ExitError](err); ok {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
