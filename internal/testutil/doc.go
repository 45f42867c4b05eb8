// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test doubles shared across packages: a scripted
// command executor that records every invocation, and a manually advanced clock.
package testutil
