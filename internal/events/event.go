// SPDX-License-Identifier: MPL-2.0

package events

import "time"

const (
	PipelineBuild     Pipeline = "build"
	PipelinePush      Pipeline = "push"
	PipelineProvision Pipeline = "provision"
)

const (
	KindStepStarted   Kind = "step.started"
	KindStepSkipped   Kind = "step.skipped"
	KindStepSucceeded Kind = "step.succeeded"
	KindCommand       Kind = "command"
	KindInfo          Kind = "info"
	KindWarning       Kind = "warning"
	KindCompleted     Kind = "pipeline.completed"
	KindFailed        Kind = "pipeline.failed"
)

type (
	// Pipeline names the pipeline an event belongs to.
	Pipeline string

	// Kind classifies an event.
	Kind string

	// Event is one progress record of a pipeline run.
	Event struct {
		// Seq is assigned by the Bus and increases by one per published event.
		Seq        int64         `json:"sequence"`
		Time       time.Time     `json:"at"`
		RunID      string        `json:"run_id"`
		Pipeline   Pipeline      `json:"pipeline"`
		Kind       Kind          `json:"kind"`
		Step       string        `json:"step,omitempty"`
		Message    string        `json:"message,omitempty"`
		Error      string        `json:"error,omitempty"`
		Duration   time.Duration `json:"-"`
		DurationMS int64         `json:"duration_ms,omitempty"`
	}
)

// Terminal reports whether e ends a run.
func (e Event) Terminal() bool {
	return e.Kind == KindCompleted || e.Kind == KindFailed
}
