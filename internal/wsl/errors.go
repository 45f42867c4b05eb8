// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEnvironment is the sentinel wrapped by InvalidEnvironmentError.
	ErrInvalidEnvironment = errors.New("invalid WSL distro")

	// ErrRuntimeUnavailable is the sentinel wrapped by RuntimeUnavailableError.
	ErrRuntimeUnavailable = errors.New("runtime unavailable in WSL distro")
)

type (
	// InvalidEnvironmentError is returned when a distro name is empty or not
	// in the launcher's listing.
	InvalidEnvironmentError struct {
		Name      string
		Available []string
	}

	// RuntimeUnavailableError is returned when a program cannot be run inside
	// a distro, or its version is below the required minimum.
	RuntimeUnavailableError struct {
		Distro  string
		Program string
		Reason  string
		Cause   error
	}
)

func (e *InvalidEnvironmentError) Error() string {
	if e.Name == "" {
		return "no WSL distro selected"
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("WSL distro %q not found (no distros installed)", e.Name)
	}
	return fmt.Sprintf("WSL distro %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrInvalidEnvironment for errors.Is() compatibility.
func (e *InvalidEnvironmentError) Unwrap() error { return ErrInvalidEnvironment }

func (e *RuntimeUnavailableError) Error() string {
	msg := fmt.Sprintf("%s is not available in WSL distro %q", e.Program, e.Distro)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrRuntimeUnavailable along with the cause, if any.
func (e *RuntimeUnavailableError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrRuntimeUnavailable, e.Cause}
	}
	return []error{ErrRuntimeUnavailable}
}
