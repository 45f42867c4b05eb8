// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"strings"
)

// ExitCodeNotStarted is reported when the process could not be started at all.
const ExitCodeNotStarted = -1

var (
	// ErrCommandFailed is the sentinel wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("command failed")

	// ErrToolMissing is the sentinel wrapped by ToolMissingError.
	ErrToolMissing = errors.New("required tool not found")
)

type (
	// CommandFailedError is returned when an external process exits non-zero or
	// cannot be started.
	CommandFailedError struct {
		Command  string
		ExitCode int
		Cause    error
	}

	// ToolMissingError is returned when one or more required executables are not
	// resolvable on the search path.
	ToolMissingError struct {
		Tools []string
	}
)

func (e *CommandFailedError) Error() string {
	if e.ExitCode == ExitCodeNotStarted {
		if e.Cause != nil {
			return fmt.Sprintf("command %q could not be started: %v", e.Command, e.Cause)
		}
		return fmt.Sprintf("command %q could not be started", e.Command)
	}
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

// Unwrap returns ErrCommandFailed along with the underlying cause, if any.
func (e *CommandFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrCommandFailed, e.Cause}
	}
	return []error{ErrCommandFailed}
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("required tool not found on PATH: %s", strings.Join(e.Tools, ", "))
}

// Unwrap returns ErrToolMissing for errors.Is() compatibility.
func (e *ToolMissingError) Unwrap() error { return ErrToolMissing }

// ExitCode extracts the exit code from a CommandFailedError in err's chain.
// It returns 0 for nil and ExitCodeNotStarted for any other error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if cfe, ok := errors.AsType[*CommandFailedError](err); ok {
		return cfe.ExitCode
	}
	return ExitCodeNotStarted
}
