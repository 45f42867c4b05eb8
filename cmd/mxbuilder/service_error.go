// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/issue"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wsl"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/wslpath"
)

// classifyError maps err to the catalog entry that explains it, or 0.
func classifyError(err error) issue.Id {
	if ae, ok := errors.AsType[*issue.ActionableError](err); ok && ae.Issue != 0 {
		return ae.Issue
	}
	switch {
	case errors.Is(err, pipeline.ErrPipelineBusy):
		return issue.PipelineBusyId
	case errors.Is(err, command.ErrToolMissing):
		return issue.ToolMissingId
	case errors.Is(err, wsl.ErrInvalidEnvironment):
		return issue.InvalidEnvironmentId
	case errors.Is(err, wsl.ErrRuntimeUnavailable):
		return issue.RuntimeUnavailableId
	case errors.Is(err, pipeline.ErrImageNotFound):
		return issue.ImageNotFoundId
	case errors.Is(err, credentials.ErrMissingCredential):
		return issue.MissingCredentialId
	case errors.Is(err, wslpath.ErrInvalidHostPath):
		return issue.InvalidHostPathId
	case errors.Is(err, pipeline.ErrInvalidConfig):
		return issue.ConfigLoadFailedId
	}
	if stepErr, ok := errors.AsType[*pipeline.StepError](err); ok {
		switch stepErr.Step {
		case pipeline.StepVerifyIdentity, pipeline.StepAuthenticate:
			return issue.AuthenticationFailedId
		}
	}
	if errors.Is(err, command.ErrCommandFailed) {
		return issue.CommandFailedId
	}
	return 0
}

// suggestionsFor returns short hints for a failed step.
func suggestionsFor(step pipeline.Step) []string {
	switch step {
	case pipeline.StepValidateTools:
		return []string{"Install the missing tools and open a new terminal"}
	case pipeline.StepValidateEnvironment:
		return []string{"Run 'mxbuilder distros' to list the installed distros"}
	case pipeline.StepProbeRuntime:
		return []string{"Run 'mxbuilder setup --distro <name>' to install python3"}
	case pipeline.StepCompile:
		return []string{"Check the buildpack and project paths", "Re-run with --verbose to see the full command output"}
	case pipeline.StepVerifyLocalImage:
		return []string{"Run 'mxbuilder build' first, or check --image and --tag"}
	case pipeline.StepResolveCredentials:
		return []string{"Provide all three explicit credentials, or use --credentials ambient"}
	case pipeline.StepVerifyIdentity, pipeline.StepAuthenticate:
		return []string{"Run 'aws sts get-caller-identity' to check your credentials", "Check that the session token has not expired"}
	default:
		return nil
	}
}

// actionable wraps a pipeline failure or start rejection for display.
func actionable(operation string, err error) *issue.ActionableError {
	if ae, ok := errors.AsType[*issue.ActionableError](err); ok {
		return ae
	}
	ec := issue.NewErrorContext().WithOperation(operation).WithIssue(classifyError(err))
	if stepErr, ok := errors.AsType[*pipeline.StepError](err); ok {
		ec = ec.WithResource(string(stepErr.Step)).
			WithSuggestions(suggestionsFor(stepErr.Step)...).
			Wrap(stepErr.Cause)
	} else {
		ec = ec.Wrap(err)
	}
	return ec.Build()
}

// renderFailure writes the formatted error and its catalog entry to w and
// returns the error the command should exit with.
func renderFailure(w io.Writer, logger *log.Logger, ae *issue.ActionableError, verbose bool, style string) error {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
	if ae.Issue != 0 {
		if entry := issue.Get(ae.Issue); entry != nil {
			rendered, err := entry.Render(style)
			if err != nil {
				logger.Warn("failed to render issue catalog entry", "issue", ae.Issue, "err", err)
			} else {
				fmt.Fprint(w, rendered)
			}
		}
	}
	return &ExitError{Code: 1, Err: ae}
}
