// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"os"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/awscli"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/container"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wsl"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wslpath"
)

type (
	// DirCheckFunc returns an error unless path is an existing directory.
	DirCheckFunc func(path string) error

	// RevisionFunc returns the commit checked out in the repository containing
	// dir.
	RevisionFunc func(dir string) (string, error)

	// Tools holds the external programs and host touch-points a pipeline uses.
	// Zero fields take the defaults applied by WithDefaults.
	Tools struct {
		Executor       command.Executor
		EngineType     container.EngineType
		EngineBinary   string
		CloudBinary    string
		LauncherBinary string
		Translator     wslpath.Translator
		StatDir        DirCheckFunc
		Revision       RevisionFunc
	}
)

// WithDefaults returns a copy of t with every empty field set.
func (t Tools) WithDefaults() Tools {
	if t.Executor == nil {
		t.Executor = command.NewExecExecutor()
	}
	if t.EngineType == "" {
		t.EngineType = container.EngineTypeDocker
	}
	if t.EngineBinary == "" {
		t.EngineBinary = string(t.EngineType)
	}
	if t.CloudBinary == "" {
		t.CloudBinary = awscli.DefaultProgram
	}
	if t.LauncherBinary == "" {
		t.LauncherBinary = wsl.DefaultProgram
	}
	if t.StatDir == nil {
		t.StatDir = StatDir
	}
	if t.Revision == nil {
		t.Revision = GitRevision
	}
	return t
}

// StatDir is the default DirCheckFunc.
func StatDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func (t Tools) engine(runner *command.Runner, env map[string]string) (container.Engine, error) {
	return container.NewEngine(t.EngineType, runner,
		container.WithBinary(t.EngineBinary),
		container.WithCmdEnv(env),
	)
}
