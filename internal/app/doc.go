// SPDX-License-Identifier: MPL-2.0

// Package app owns the run token and starts pipelines on worker goroutines.
//
// A Service accepts at most one run at a time. Start validates the pipeline
// and takes the token before returning, so a rejected start never reaches a
// worker. Workers communicate only through the events publisher and the Run
// handle; they hold no presentation state.
package app
