// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ToolMissingId, false, "Required tool not found"},
		{InvalidEnvironmentId, false, "WSL distro not found"},
		{RuntimeUnavailableId, false, "Python is not available"},
		{CommandFailedId, false, "external command failed"},
		{ImageNotFoundId, false, "Local image not found"},
		{MissingCredentialId, false, "credentials are incomplete"},
		{AuthenticationFailedId, false, "authenticate with AWS"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{PipelineBusyId, false, "already running"},
		{InvalidHostPathId, false, "cannot be mapped"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			got := Get(tt.id)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", got.Id(), tt.id)
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues_Ordered(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(InvalidHostPathId) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), InvalidHostPathId)
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
	}
}

func TestIssue_ExtLinksClone(t *testing.T) {
	t.Parallel()

	i := Get(ToolMissingId)
	links := i.ExtLinks()
	if len(links) == 0 {
		t.Fatal("expected external links")
	}
	original := links[0]
	links[0] = "modified"
	if i.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

//nolint:paralleltest // swaps the package-level render func
func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, _ string) (string, error) {
		return in, nil
	}

	rendered, err := Get(InvalidEnvironmentId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "wsl --install") {
		t.Error("Render() output should contain the install hint")
	}
	if !strings.Contains(rendered, "## See also") {
		t.Error("Render() output should list external links")
	}
}
