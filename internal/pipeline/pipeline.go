// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
)

// Pipeline is one of the build, push or provision pipelines.
type Pipeline interface {
	// Name identifies the pipeline in events.
	Name() events.Pipeline
	// Validate checks the configuration without touching external tools.
	Validate() error
	// Execute runs every step and always returns a terminal Result.
	Execute(ctx context.Context, em *events.Emitter) *Result
}

// Acquire validates p and takes token. Both failures are start rejections:
// nothing has run and no event was emitted.
func Acquire(p Pipeline, token *Token) (release func(), err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return token.TryAcquire()
}

// Run executes p on the calling goroutine while holding token. The token is
// released once the run is terminal.
func Run(ctx context.Context, p Pipeline, token *Token, pub events.Publisher, opts ...events.EmitterOption) (*Result, error) {
	release, err := Acquire(p, token)
	if err != nil {
		return nil, err
	}
	defer release()
	return p.Execute(ctx, events.NewEmitter(pub, p.Name(), opts...)), nil
}
