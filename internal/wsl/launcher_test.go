// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/testutil"
)

// utf16le encodes s the way wsl.exe writes its listing.
func utf16le(s string) string {
	var b strings.Builder
	b.WriteString("\xff\xfe")
	for _, r := range s {
		b.WriteByte(byte(r))
		b.WriteByte(byte(r >> 8))
	}
	return b.String()
}

func newLauncher(fake *testutil.FakeExecutor) *Launcher {
	return NewLauncher(command.NewRunner(fake, nil), "")
}

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"utf8", "Ubuntu\nDebian\n", []string{"Ubuntu", "Debian"}},
		{"crlf and blanks", "Ubuntu\r\n\r\n  Debian  \r\n", []string{"Ubuntu", "Debian"}},
		{"utf16 with bom", utf16le("Ubuntu-22.04\r\nDebian\r\n"), []string{"Ubuntu-22.04", "Debian"}},
		{"interleaved nuls without bom", "U\x00b\x00u\x00n\x00t\x00u\x00\n\x00", []string{"Ubuntu"}},
		{"odd length with nuls", "Ubuntu\x00\x00\n", []string{"Ubuntu"}},
		{"stray trailing nul", "Ubuntu-22.04\x00\n", []string{"Ubuntu-22.04"}},
		{"stray nul short name", "Debian\x00\n", []string{"Debian"}},
		{"stray nuls crlf", "Ubuntu-22.04\x00\r\nDebian\x00\r\n", []string{"Ubuntu-22.04", "Debian"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseList(tt.raw); !slices.Equal(got, tt.want) {
				t.Errorf("ParseList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Ubuntu":             "Ubuntu",
		"  Ubuntu \t":        "Ubuntu",
		"U\x00bun\x00tu\x00": "Ubuntu",
		"\ufeffDebian\r":     "Debian",
		"\x00\x00":           "",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLauncher_List(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeExecutor().On("wsl -l -q", testutil.Response{Stdout: utf16le("Ubuntu\r\nkali-linux\r\n")})
	got := newLauncher(fake).List(t.Context())
	if !slices.Equal(got, []string{"Ubuntu", "kali-linux"}) {
		t.Errorf("List() = %q", got)
	}
}

func TestLauncher_ListNeverFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp testutil.Response
	}{
		{"non-zero exit", testutil.Response{ExitCode: 1, Stdout: "Ubuntu\n"}},
		{"not started", testutil.Response{Err: errors.New("wsl not installed")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := testutil.NewFakeExecutor().On("wsl -l -q", tt.resp)
			got := newLauncher(fake).List(t.Context())
			if got == nil || len(got) != 0 {
				t.Errorf("List() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestLauncher_Validate(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeExecutor().On("wsl -l -q", testutil.Response{Stdout: utf16le("Ubuntu\r\nDebian\r\n")})
	l := newLauncher(fake)

	got, err := l.Validate(t.Context(), " Ubuntu\x00 ")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != "Ubuntu" {
		t.Errorf("Validate() = %q, want Ubuntu", got)
	}

	_, err = l.Validate(t.Context(), "Fedora")
	if !errors.Is(err, ErrInvalidEnvironment) {
		t.Fatalf("Validate(Fedora) error = %v, want ErrInvalidEnvironment", err)
	}
	iee, _ := errors.AsType[*InvalidEnvironmentError](err)
	if !slices.Equal(iee.Available, []string{"Ubuntu", "Debian"}) {
		t.Errorf("Available = %q", iee.Available)
	}

	if _, err := l.Validate(t.Context(), "   "); !errors.Is(err, ErrInvalidEnvironment) {
		t.Errorf("Validate(blank) error = %v, want ErrInvalidEnvironment", err)
	}
}

func TestLauncher_ValidateStrayNulListing(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeExecutor().On("wsl -l -q", testutil.Response{Stdout: "Ubuntu-22.04\x00\r\nDebian\x00\r\n"})
	l := newLauncher(fake)

	for _, name := range []string{"Ubuntu-22.04", "Debian"} {
		got, err := l.Validate(t.Context(), name)
		if err != nil {
			t.Fatalf("Validate(%q) error = %v", name, err)
		}
		if got != name {
			t.Errorf("Validate(%q) = %q", name, got)
		}
	}
}

func TestLauncher_ValidateWhenLauncherBroken(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeExecutor().On("wsl -l -q", testutil.Response{ExitCode: 1})
	_, err := newLauncher(fake).Validate(t.Context(), "Ubuntu")
	if !errors.Is(err, ErrInvalidEnvironment) {
		t.Errorf("Validate() error = %v, want ErrInvalidEnvironment", err)
	}
}

func TestLauncher_Probe(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeExecutor().On("wsl -d Ubuntu python3 --version", testutil.Response{Stdout: "Python 3.10.12\n"})
	out, err := newLauncher(fake).Probe(t.Context(), "Ubuntu", "python3", nil)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if out != "Python 3.10.12" {
		t.Errorf("Probe() = %q", out)
	}

	failing := testutil.NewFakeExecutor().On("wsl -d Ubuntu python3 --version", testutil.Response{ExitCode: 127})
	_, err = newLauncher(failing).Probe(t.Context(), "Ubuntu", "python3", nil)
	if !errors.Is(err, ErrRuntimeUnavailable) || !errors.Is(err, command.ErrCommandFailed) {
		t.Errorf("Probe() error = %v, want ErrRuntimeUnavailable wrapping ErrCommandFailed", err)
	}
}

func TestLauncher_ShellSharesEnvThroughWSLENV(t *testing.T) {
	t.Setenv("WSLENV", "")

	fake := testutil.NewFakeExecutor()
	l := newLauncher(fake)
	env := map[string]string{"AWS_DEFAULT_REGION": "ap-south-1"}

	if err := l.Shell(t.Context(), "Ubuntu", "cd /mnt/c/bp && python3 ./build.py", env); err != nil {
		t.Fatalf("Shell() error = %v", err)
	}

	calls := fake.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	inv := calls[0]
	if want := []string{"-d", "Ubuntu", "sh", "-lc", "cd /mnt/c/bp && python3 ./build.py"}; !slices.Equal(inv.Args, want) {
		t.Errorf("Args = %q, want %q", inv.Args, want)
	}
	if inv.Env["AWS_DEFAULT_REGION"] != "ap-south-1" {
		t.Errorf("region override missing: %v", inv.Env)
	}
	if inv.Env["WSLENV"] != "AWS_DEFAULT_REGION" {
		t.Errorf("WSLENV = %q, want AWS_DEFAULT_REGION", inv.Env["WSLENV"])
	}
}

func TestLauncher_ShellWithoutEnv(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeExecutor()
	inv := newLauncher(fake).ShellInvocation("Ubuntu", "sudo apt-get update", nil)
	if len(inv.Env) != 0 {
		t.Errorf("Env = %v, want none", inv.Env)
	}
	if inv.Program != DefaultProgram {
		t.Errorf("Program = %q", inv.Program)
	}
}
