// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/config"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wslpath"
)

type (
	// App wires CLI dependencies. It is the composition root for the CLI layer:
	// every command handler receives it and reads configuration through it.
	App struct {
		executor  command.Executor
		statDir   pipeline.DirCheckFunc
		getenv    func(string) string
		configDir string
		stdout    io.Writer
		stderr    io.Writer

		// global flags
		cfgFile    string
		verbose    bool
		eventsJSON string

		once    sync.Once
		cfg     *config.Config
		cfgPath string
		cfgErr  error
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Executor  command.Executor
		StatDir   pipeline.DirCheckFunc
		Getenv    func(string) string
		ConfigDir string
		Stdout    io.Writer
		Stderr    io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	a := &App{
		executor:  deps.Executor,
		statDir:   deps.StatDir,
		getenv:    deps.Getenv,
		configDir: deps.ConfigDir,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
	if a.executor == nil {
		a.executor = command.NewExecExecutor(command.WithOutput(os.Stdout, os.Stderr))
	}
	if a.getenv == nil {
		a.getenv = os.Getenv
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	return a
}

// Config loads the configuration once per App.
func (a *App) Config(ctx context.Context) (*config.Config, error) {
	a.once.Do(func() {
		a.cfg, a.cfgPath, a.cfgErr = config.Load(ctx, config.LoadOptions{
			ConfigFilePath: a.cfgFile,
			ConfigDirPath:  a.configDir,
		})
	})
	return a.cfg, a.cfgErr
}

// ConfigPath returns the file the configuration came from, if any.
func (a *App) ConfigPath() string {
	return a.cfgPath
}

// Verbose reports whether verbose output was requested by flag or config.
func (a *App) Verbose(cfg *config.Config) bool {
	return a.verbose || (cfg != nil && cfg.UI.Verbose)
}

// Tools builds the pipeline tools from cfg.
func (a *App) Tools(cfg *config.Config) pipeline.Tools {
	return pipeline.Tools{
		Executor:       a.executor,
		EngineType:     cfg.ContainerEngine,
		EngineBinary:   cfg.Tools.EngineBinary,
		CloudBinary:    cfg.Tools.CloudBinary,
		LauncherBinary: cfg.Tools.LauncherBinary,
		Translator:     wslpath.Translator{MountRoot: cfg.WSL.MountRoot},
		StatDir:        a.statDir,
	}
}

// Logger returns the stderr logger configured from cfg.
func (a *App) Logger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	if a.Verbose(cfg) {
		logger.SetLevel(log.DebugLevel)
	}
	if cfg != nil {
		switch cfg.UI.Color {
		case config.ColorNever:
			logger.SetColorProfile(termenv.Ascii)
		case config.ColorAlways:
			logger.SetColorProfile(termenv.TrueColor)
		}
	}
	return logger
}

// glamourStyle picks the issue rendering style for cfg.
func glamourStyle(cfg *config.Config) string {
	if cfg != nil && cfg.UI.Color == config.ColorNever {
		return "notty"
	}
	return "dark"
}
