// SPDX-License-Identifier: MPL-2.0

// Package container drives a container engine CLI (Docker or Podman) for the
// image operations a build and push need: build, list, tag, push and login.
//
// Both engines embed BaseCLIEngine, which builds argument lists and runs them
// through a command.Runner, so every engine call is announced and fails with a
// command.CommandFailedError. ImageCache answers "does this tag exist locally?"
// and treats any engine failure as "no".
package container
