// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"time"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
)

const (
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

const (
	StepStatusSucceeded StepStatus = "succeeded"
	StepStatusFailed    StepStatus = "failed"
)

// Step names, in the order the pipelines run them.
const (
	StepValidateTools         Step = "ValidateTools"
	StepValidateEnvironment   Step = "ValidateEnvironment"
	StepProbeRuntime          Step = "ProbeRuntime"
	StepConditionalBaseImages Step = "ConditionalBaseImages"
	StepCompile               Step = "Compile"
	StepBuildFinalImage       Step = "BuildFinalImage"

	StepResolveCredentials Step = "ResolveCredentials"
	StepVerifyLocalImage   Step = "VerifyLocalImage"
	StepVerifyIdentity     Step = "VerifyIdentity"
	StepAuthenticate       Step = "Authenticate"
	StepTagAndPush         Step = "TagAndPush"

	StepUpdatePackages Step = "UpdatePackages"
	StepInstallRuntime Step = "InstallRuntime"
)

type (
	// State is the terminal state of a run.
	State string

	// Step names a pipeline step.
	Step string

	// StepStatus is the outcome of one executed step.
	StepStatus string

	// StepResult records one executed step.
	StepResult struct {
		Step     Step
		Status   StepStatus
		Duration time.Duration
		Err      error
	}

	// Result is the outcome of a run that started.
	Result struct {
		RunID      string
		Pipeline   events.Pipeline
		State      State
		Steps      []StepResult
		FailedStep Step
		Cause      error
		Duration   time.Duration
	}
)

// Err returns nil for a completed run and a *StepError otherwise.
func (r *Result) Err() error {
	if r.State == StateCompleted {
		return nil
	}
	return &StepError{Step: r.FailedStep, Cause: r.Cause}
}

// Executed returns the names of the executed steps in order.
func (r *Result) Executed() []Step {
	out := make([]Step, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Step
	}
	return out
}
