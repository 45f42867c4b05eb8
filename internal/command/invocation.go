// SPDX-License-Identifier: MPL-2.0

package command

import (
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// shellMeta lists the characters that force an argument to be quoted when a
// command line is rendered.
const shellMeta = " \t\n'\"\\$`*?[]{}()<>|&;#~!"

type (
	// Invocation describes one external process: what to run, where, and with
	// which per-invocation environment overrides and stdin payload.
	Invocation struct {
		Program string
		Args    []string
		Dir     string
		// Stdin is written to the process' standard input. It is never rendered.
		Stdin string
		// Env overrides are layered on top of the inherited environment for this
		// process only. Values are never rendered.
		Env map[string]string
		// Capture collects stdout into Result.Stdout instead of streaming it.
		Capture bool
	}

	// Result is the outcome of a process that was started.
	Result struct {
		ExitCode int
		Stdout   string
	}
)

// New returns an Invocation for program with args.
func New(program string, args ...string) Invocation {
	return Invocation{Program: program, Args: args}
}

// WithEnv returns a copy of inv with env merged into its overrides.
func (inv Invocation) WithEnv(env map[string]string) Invocation {
	if len(env) == 0 {
		return inv
	}
	merged := make(map[string]string, len(inv.Env)+len(env))
	maps.Copy(merged, inv.Env)
	maps.Copy(merged, env)
	inv.Env = merged
	return inv
}

// WithStdin returns a copy of inv that feeds stdin to the process.
func (inv Invocation) WithStdin(stdin string) Invocation {
	inv.Stdin = stdin
	return inv
}

// String renders the literal command line. Arguments containing shell
// metacharacters are quoted so the line can be pasted into a shell.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, Quote(inv.Program))
	for _, a := range inv.Args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Environ overlays the invocation's overrides onto base, in sorted key order.
// exec.Cmd keeps the last value for duplicate keys, so overrides win.
func (inv Invocation) Environ(base []string) []string {
	env := slices.Clone(base)
	for _, k := range slices.Sorted(maps.Keys(inv.Env)) {
		env = append(env, k+"="+inv.Env[k])
	}
	return env
}

// Quote returns s unchanged when it is safe as a single shell word, and
// POSIX-quoted otherwise.
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, shellMeta) {
		return s
	}
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return s
	}
	return q
}
