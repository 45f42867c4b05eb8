// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/app"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/config"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
)

// startFunc starts one pipeline run on svc.
type startFunc func(ctx context.Context, svc *app.Service) (*app.Run, error)

// runPipeline starts a run and consumes its events on the calling goroutine
// until the run is terminal. A failed run becomes an *ExitError.
func (a *App) runPipeline(cmd *cobra.Command, cfg *config.Config, operation string, start startFunc) error {
	ctx := cmd.Context()
	logger := a.Logger(cfg)
	style := glamourStyle(cfg)
	verbose := a.Verbose(cfg)

	sinks := []events.Sink{events.NewLogSink(logger)}
	if a.eventsJSON != "" {
		f, err := os.Create(a.eventsJSON)
		if err != nil {
			return renderFailure(a.stderr, logger, actionable("open event log", err), verbose, style)
		}
		defer f.Close()
		sinks = append(sinks, events.NewJSONSink(f))
	}
	if cfg.Events.NATSURL != "" {
		ns, err := events.ConnectNATSSink(cfg.Events.NATSURL, cfg.Events.NATSSubject)
		if err != nil {
			logger.Warn("NATS event sink disabled", "url", cfg.Events.NATSURL, "err", err)
		} else {
			defer ns.Close()
			sinks = append(sinks, ns)
		}
	}

	bus := events.NewBus(0, logger, sinks...)
	svc := app.NewService(a.Tools(cfg), bus)

	run, err := start(ctx, svc)
	if err != nil {
		bus.Close()
		return renderFailure(a.stderr, logger, actionable(operation, err), verbose, style)
	}
	logger.Debug("run started", "pipeline", run.Pipeline(), "run", run.ID())

	go func() {
		<-run.Done()
		bus.Close()
	}()
	if err := bus.Run(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("event loop: %w", err)
	}

	res := run.Result()
	if res.State == pipeline.StateFailed {
		return renderFailure(a.stderr, logger, actionable(operation, res.Err()), verbose, style)
	}
	return nil
}
