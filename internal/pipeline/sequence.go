// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
)

type (
	step struct {
		name Step
		run  func(ctx context.Context) error
	}

	// sequence runs steps in order and reports them through the emitter. Its
	// runner announces each command line under the step that issued it.
	sequence struct {
		em      *events.Emitter
		runner  *command.Runner
		current Step
	}
)

func newSequence(em *events.Emitter, executor command.Executor) *sequence {
	s := &sequence{em: em}
	s.runner = command.NewRunner(executor, func(line string) {
		em.Command(string(s.current), line)
	})
	return s
}

func (s *sequence) info(msg string) {
	s.em.Info(string(s.current), msg)
}

func (s *sequence) warn(msg string) {
	s.em.Warn(string(s.current), msg)
}

func (s *sequence) skip(reason string) {
	s.em.StepSkipped(string(s.current), reason)
}

// run executes steps until one fails.
func (s *sequence) run(ctx context.Context, steps []step) *Result {
	start := s.em.Now()
	res := &Result{RunID: s.em.RunID(), Pipeline: s.em.Pipeline()}

	for _, st := range steps {
		s.current = st.name
		s.em.StepStarted(string(st.name))
		began := s.em.Now()
		err := st.run(ctx)
		d := s.em.Now().Sub(began)
		if err != nil {
			res.Steps = append(res.Steps, StepResult{Step: st.name, Status: StepStatusFailed, Duration: d, Err: err})
			res.State = StateFailed
			res.FailedStep = st.name
			res.Cause = err
			res.Duration = s.em.Now().Sub(start)
			s.em.Failed(string(st.name), err)
			return res
		}
		res.Steps = append(res.Steps, StepResult{Step: st.name, Status: StepStatusSucceeded, Duration: d})
		s.em.StepSucceeded(string(st.name), d)
	}

	res.State = StateCompleted
	res.Duration = s.em.Now().Sub(start)
	s.em.Completed(res.Duration)
	return res
}
