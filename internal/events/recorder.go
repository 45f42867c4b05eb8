// SPDX-License-Identifier: MPL-2.0

package events

import (
	"slices"
	"sync"
)

// Recorder collects events in memory. It is both a Publisher, assigning
// sequence numbers like a Bus, and a Sink.
type Recorder struct {
	mu     sync.Mutex
	seq    int64
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish records e with the next sequence number.
func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	e.Seq = r.seq
	r.events = append(r.events, e)
}

// Handle records e as delivered.
func (r *Recorder) Handle(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// OfKind returns the recorded events of kind k.
func (r *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns the Message of every recorded event of kind k.
func (r *Recorder) Messages(k Kind) []string {
	var out []string
	for _, e := range r.OfKind(k) {
		out = append(out, e.Message)
	}
	return out
}
