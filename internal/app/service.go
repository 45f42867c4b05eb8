// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"sync"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wsl"
)

type (
	// Service starts pipelines under a single run token.
	Service struct {
		token   pipeline.Token
		tools   pipeline.Tools
		pub     events.Publisher
		emitOps []events.EmitterOption
		wg      sync.WaitGroup
	}

	// Run is the handle of a started pipeline.
	Run struct {
		id       string
		pipeline events.Pipeline
		done     chan struct{}
		result   *pipeline.Result
	}
)

// NewService creates a Service. Events of every run go to pub.
func NewService(tools pipeline.Tools, pub events.Publisher, opts ...events.EmitterOption) *Service {
	return &Service{tools: tools.WithDefaults(), pub: pub, emitOps: opts}
}

// Tools returns the tools runs are created with.
func (s *Service) Tools() pipeline.Tools { return s.tools }

// Busy reports whether a run holds the token.
func (s *Service) Busy() bool { return s.token.Held() }

// StartBuild starts a build run.
func (s *Service) StartBuild(ctx context.Context, cfg pipeline.BuildConfig) (*Run, error) {
	return s.Start(ctx, pipeline.NewBuild(cfg, s.tools))
}

// StartPush starts a push run.
func (s *Service) StartPush(ctx context.Context, cfg pipeline.PushConfig) (*Run, error) {
	return s.Start(ctx, pipeline.NewPush(cfg, s.tools))
}

// StartProvision starts a provision run.
func (s *Service) StartProvision(ctx context.Context, cfg pipeline.ProvisionConfig) (*Run, error) {
	return s.Start(ctx, pipeline.NewProvision(cfg, s.tools))
}

// Start validates p, takes the token and runs p on a new goroutine. Start
// rejections (invalid configuration, pipeline.ErrPipelineBusy) are returned
// directly and emit no events. Cancelling ctx does not stop a started run;
// in-flight commands always finish.
func (s *Service) Start(ctx context.Context, p pipeline.Pipeline) (*Run, error) {
	release, err := pipeline.Acquire(p, &s.token)
	if err != nil {
		return nil, err
	}

	em := events.NewEmitter(s.pub, p.Name(), s.emitOps...)
	r := &Run{id: em.RunID(), pipeline: p.Name(), done: make(chan struct{})}
	runCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		r.result = p.Execute(runCtx, em)
		// The token is free before waiters wake, so they may start again.
		release()
		close(r.done)
	}()
	return r, nil
}

// Wait blocks until every started run is terminal.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Distros lists the installed WSL distros, normalized. It never fails.
func (s *Service) Distros(ctx context.Context) []string {
	runner := command.NewRunner(s.tools.Executor, nil)
	return wsl.NewLauncher(runner, s.tools.LauncherBinary).List(ctx)
}

// ID returns the run ID carried by every event of the run.
func (r *Run) ID() string { return r.id }

// Pipeline returns which pipeline is running.
func (r *Run) Pipeline() events.Pipeline { return r.pipeline }

// Done is closed once the run is terminal.
func (r *Run) Done() <-chan struct{} { return r.done }

// Result returns the terminal result, or nil while the run is in progress.
func (r *Run) Result() *pipeline.Result {
	select {
	case <-r.done:
		return r.result
	default:
		return nil
	}
}

// Wait blocks until the run is terminal or ctx ends.
func (r *Run) Wait(ctx context.Context) (*pipeline.Result, error) {
	select {
	case <-r.done:
		return r.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
