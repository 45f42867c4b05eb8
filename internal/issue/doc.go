// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and remediation
// hints. The issue catalog holds Markdown guidance for the failure classes a build or
// push can end in, rendered for the terminal with glamour.
package issue
