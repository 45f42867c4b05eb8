// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/mxbuilder/config.cue (resolved with
// adrg/xdg, so the platform's native location on macOS and Windows), falling back to
// ./config.cue. Values are layered: built-in defaults, then the file, then MXBUILDER_*
// environment variables (MXBUILDER_PUSH_REGION overrides push.region).
//
// Every file is validated against the embedded #Config schema before it is merged.
// The schema is closed, so unknown keys are rejected; explicit AWS credentials have
// no key at all and can only come from flags or the environment.
package config
