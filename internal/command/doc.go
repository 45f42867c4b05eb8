// SPDX-License-Identifier: MPL-2.0

// Package command runs the external tools the pipelines orchestrate.
//
// An Executor starts processes; a Runner announces each command line before it runs,
// turns non-zero exits into CommandFailedError and checks tool availability.
// Environment overrides and stdin travel with each Invocation and never appear in the
// rendered command line.
package command
