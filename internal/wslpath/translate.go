// SPDX-License-Identifier: MPL-2.0

// Package wslpath maps Windows host paths to the paths a WSL distro sees them at.
package wslpath

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// DefaultMountRoot is where WSL mounts host drives.
const DefaultMountRoot = "/mnt/"

// ErrInvalidHostPath is the sentinel wrapped by InvalidHostPathError.
var ErrInvalidHostPath = errors.New("invalid host path")

type (
	// AbsFunc resolves a relative host path to an absolute one.
	AbsFunc func(string) (string, error)

	// Translator converts host paths. The zero value uses DefaultMountRoot and
	// filepath.Abs.
	Translator struct {
		MountRoot string
		Abs       AbsFunc
	}

	// InvalidHostPathError is returned for paths that have no drive letter,
	// such as UNC shares, and so cannot be reached under the mount root.
	InvalidHostPathError struct {
		Path   string
		Reason string
	}
)

func (e *InvalidHostPathError) Error() string {
	return fmt.Sprintf("cannot map host path %q into WSL: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidHostPath for errors.Is() compatibility.
func (e *InvalidHostPathError) Unwrap() error { return ErrInvalidHostPath }

// ToEnvironment translates hostPath, e.g. `C:\Users\Dev\app` to
// `/mnt/c/Users/Dev/app`. A bare drive maps to the drive root without a
// trailing separator (`C:\` to `/mnt/c`).
func (t Translator) ToEnvironment(hostPath string) (string, error) {
	if strings.TrimSpace(hostPath) == "" {
		return "", &InvalidHostPathError{Path: hostPath, Reason: "path is empty"}
	}

	p := hostPath
	if !hasDrive(p) && !isRooted(p) {
		abs, err := t.abs()(p)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", hostPath, err)
		}
		p = abs
	}
	if !hasDrive(p) {
		return "", &InvalidHostPathError{Path: hostPath, Reason: "no drive letter"}
	}
	if len(p) > 2 && p[2] != '\\' && p[2] != '/' {
		return "", &InvalidHostPathError{Path: hostPath, Reason: "drive-relative paths are not supported"}
	}

	drive := strings.ToLower(p[:1])
	rest := strings.ReplaceAll(p[2:], `\`, "/")
	rest = strings.TrimLeft(path.Clean("/"+rest), "/")

	mapped := strings.TrimRight(t.mountRoot(), "/") + "/" + drive
	if rest != "" {
		mapped += "/" + rest
	}
	return mapped, nil
}

// ToEnvironmentAll translates several paths, stopping at the first failure.
func (t Translator) ToEnvironmentAll(hostPaths ...string) ([]string, error) {
	out := make([]string, 0, len(hostPaths))
	for _, hp := range hostPaths {
		mapped, err := t.ToEnvironment(hp)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (t Translator) mountRoot() string {
	if t.MountRoot == "" {
		return DefaultMountRoot
	}
	return t.MountRoot
}

func (t Translator) abs() AbsFunc {
	if t.Abs == nil {
		return filepath.Abs
	}
	return t.Abs
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// isRooted reports whether p starts at a root without a drive (`\share`, `//host`).
func isRooted(p string) bool {
	return strings.HasPrefix(p, `\`) || strings.HasPrefix(p, "/")
}
