// SPDX-License-Identifier: MPL-2.0

// Package pipeline implements the build, push and provision pipelines.
//
// Each pipeline is a fixed, ordered list of steps. Steps run one after the
// other on the calling goroutine and the first failure ends the run: the
// Result names the failed step and its cause, and no later step starts.
// Progress is reported only through an events.Emitter, including every
// external command line before it executes.
//
// Configuration problems and a busy Token are start rejections: Run returns
// them as errors before any step runs. Everything after that is reported in
// the Result.
package pipeline
