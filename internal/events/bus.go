// SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultBufferSize is the channel capacity used when none is given.
const DefaultBufferSize = 64

type (
	// Publisher accepts events from a producer.
	Publisher interface {
		Publish(e Event)
	}

	// Sink consumes events on the bus' consumer loop.
	Sink interface {
		Handle(e Event) error
	}

	// SinkFunc adapts a function to Sink.
	SinkFunc func(e Event) error

	// Bus sequences events and delivers them over a channel to a single
	// consumer loop (Run), which fans them out to sinks in registration order.
	Bus struct {
		mu     sync.Mutex
		ch     chan Event
		seq    int64
		closed bool
		sinks  []Sink
		failed map[int]bool
		logger *log.Logger
		done   chan struct{}
	}
)

// Handle calls f(e).
func (f SinkFunc) Handle(e Event) error { return f(e) }

// NewBus creates a Bus. A buffer below 1 means DefaultBufferSize; a nil
// logger discards sink failure reports.
func NewBus(buffer int, logger *log.Logger, sinks ...Sink) *Bus {
	if buffer < 1 {
		buffer = DefaultBufferSize
	}
	return &Bus{
		ch:     make(chan Event, buffer),
		sinks:  sinks,
		failed: make(map[int]bool),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Publish assigns the next sequence number and queues e. Events published
// after Close are dropped. Publish blocks while the buffer is full, so Run
// must be consuming.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.seq++
	e.Seq = b.seq
	b.ch <- e
}

// Run is the consumer loop. It returns nil once Close has been called and
// every queued event was delivered, or ctx.Err() if ctx ends first.
func (b *Bus) Run(ctx context.Context) error {
	defer close(b.done)
	for {
		select {
		case e, ok := <-b.ch:
			if !ok {
				return nil
			}
			b.dispatch(e)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops accepting events. Run drains what is queued and returns.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.ch)
}

// Done is closed when Run returns.
func (b *Bus) Done() <-chan struct{} {
	return b.done
}

// dispatch delivers e to each sink. A failing sink is reported once and
// keeps receiving later events.
func (b *Bus) dispatch(e Event) {
	for i, s := range b.sinks {
		if err := s.Handle(e); err != nil && !b.failed[i] {
			b.failed[i] = true
			if b.logger != nil {
				b.logger.Warn("event sink failed", "sink", i, "err", err)
			}
		}
	}
}
