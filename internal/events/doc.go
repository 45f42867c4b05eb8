// SPDX-License-Identifier: MPL-2.0

// Package events carries pipeline progress from the worker running a
// pipeline to whoever presents it.
//
// A pipeline only produces events through an Emitter. The Bus forwards them
// over a channel to a single consumer loop, which hands each event to the
// configured sinks in order. Sinks never affect the outcome of a run.
package events
