// SPDX-License-Identifier: MPL-2.0

package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	// Emitter produces the events of one pipeline run.
	Emitter struct {
		pub      Publisher
		runID    string
		pipeline Pipeline
		now      func() time.Time
	}

	// EmitterOption configures an Emitter.
	EmitterOption func(*Emitter)

	discard struct{}
)

func (discard) Publish(Event) {}

// WithClock sets the time source.
func WithClock(now func() time.Time) EmitterOption {
	return func(e *Emitter) {
		e.now = now
	}
}

// WithRunID sets the run ID instead of generating one.
func WithRunID(id string) EmitterOption {
	return func(e *Emitter) {
		e.runID = id
	}
}

// NewEmitter creates an Emitter for a new run of pipeline. A nil publisher
// discards everything.
func NewEmitter(pub Publisher, pipeline Pipeline, opts ...EmitterOption) *Emitter {
	if pub == nil {
		pub = discard{}
	}
	e := &Emitter{pub: pub, pipeline: pipeline, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	return e
}

// RunID returns the run's identifier.
func (e *Emitter) RunID() string { return e.runID }

// Pipeline returns the pipeline name.
func (e *Emitter) Pipeline() Pipeline { return e.pipeline }

// Now returns the emitter's current time.
func (e *Emitter) Now() time.Time { return e.now() }

func (e *Emitter) emit(ev Event) {
	ev.Time = e.now()
	ev.RunID = e.runID
	ev.Pipeline = e.pipeline
	if ev.Duration > 0 {
		ev.DurationMS = ev.Duration.Milliseconds()
	}
	e.pub.Publish(ev)
}

// StepStarted reports that step began.
func (e *Emitter) StepStarted(step string) {
	e.emit(Event{Kind: KindStepStarted, Step: step})
}

// StepSkipped reports that work within step was skipped.
func (e *Emitter) StepSkipped(step, reason string) {
	e.emit(Event{Kind: KindStepSkipped, Step: step, Message: reason})
}

// StepSucceeded reports that step finished after d.
func (e *Emitter) StepSucceeded(step string, d time.Duration) {
	e.emit(Event{Kind: KindStepSucceeded, Step: step, Duration: d})
}

// Command reports a command line about to be executed within step.
func (e *Emitter) Command(step, line string) {
	e.emit(Event{Kind: KindCommand, Step: step, Message: line})
}

// Info reports progress.
func (e *Emitter) Info(step, msg string) {
	e.emit(Event{Kind: KindInfo, Step: step, Message: msg})
}

// Warn reports something worth attention that does not fail the run.
func (e *Emitter) Warn(step, msg string) {
	e.emit(Event{Kind: KindWarning, Step: step, Message: msg})
}

// Completed reports the run's successful end.
func (e *Emitter) Completed(d time.Duration) {
	e.emit(Event{Kind: KindCompleted, Message: fmt.Sprintf("%s completed", e.pipeline), Duration: d})
}

// Failed reports the run's failure at step.
func (e *Emitter) Failed(step string, err error) {
	ev := Event{Kind: KindFailed, Step: step, Message: fmt.Sprintf("%s failed at %s", e.pipeline, step)}
	if err != nil {
		ev.Error = err.Error()
	}
	e.emit(ev)
}
