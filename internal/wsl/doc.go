// SPDX-License-Identifier: MPL-2.0

// Package wsl talks to the Windows Subsystem for Linux launcher: it lists and
// validates installed distros and runs programs and shell scripts inside them.
//
// Distro names are normalized once, here. The launcher's listing output is
// UTF-16LE on most Windows builds and is decoded and stripped of NUL and other
// control characters before anything else sees it.
package wsl
