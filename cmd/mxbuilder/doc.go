// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the mxbuilder CLI commands.
//
// Commands load configuration, translate flags into pipeline configurations
// and start runs through app.Service. The command goroutine is the single
// consumer of pipeline events: it runs the event bus loop until the run is
// terminal, then maps a failed result to an exit code and a rendered issue.
package cmd
