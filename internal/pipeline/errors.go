// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrPipelineBusy is returned when a run is requested while another holds
	// the Token.
	ErrPipelineBusy = errors.New("a pipeline is already running")

	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid pipeline configuration")

	// ErrImageNotFound is the sentinel wrapped by ImageNotFoundError.
	ErrImageNotFound = errors.New("local image not found")
)

type (
	// InvalidConfigError is returned when a configuration field is unusable.
	InvalidConfigError struct {
		Field  string
		Reason string
	}

	// ImageNotFoundError is returned by a push when the local image is absent.
	ImageNotFoundError struct {
		Ref string
	}

	// StepError is the Failed{step, cause} outcome of a run.
	StepError struct {
		Step  Step
		Cause error
	}
)

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func (e *ImageNotFoundError) Error() string {
	return fmt.Sprintf("local image %s not found; build it first", e.Ref)
}

// Unwrap returns ErrImageNotFound for errors.Is() compatibility.
func (e *ImageNotFoundError) Unwrap() error { return ErrImageNotFound }

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Cause)
}

// Unwrap returns the step's cause.
func (e *StepError) Unwrap() error { return e.Cause }
