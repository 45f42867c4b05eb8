// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	ToolMissingId Id = iota + 1
	InvalidEnvironmentId
	RuntimeUnavailableId
	CommandFailedId
	ImageNotFoundId
	MissingCredentialId
	AuthenticationFailedId
	ConfigLoadFailedId
	PipelineBusyId
	InvalidHostPathId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the given glamour style
// ("dark", "light", "notty", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	toolMissingIssue = &Issue{
		id: ToolMissingId,
		mdMsg: `
# Required tool not found!

A command-line tool needed by this pipeline is not on your PATH.

## The pipelines use:
- **docker** to build, tag and push images
- **aws** to verify your identity and log in to ECR
- **wsl** to run the buildpack inside a Linux distro

## Things you can try:
- Install the missing tool and open a new terminal
- Point mxbuilder at a custom binary in your config:
~~~cue
tools: {
	engine_binary: "C:/Program Files/Docker/Docker/resources/bin/docker.exe"
}
~~~`,
		extLinks: []HttpLink{
			"https://docs.docker.com/get-docker/",
			"https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
		},
	}

	invalidEnvironmentIssue = &Issue{
		id: InvalidEnvironmentId,
		mdMsg: `
# WSL distro not found!

The selected distro is not in the list reported by ` + "`wsl -l -q`" + `.

## Things you can try:
- List the installed distros:
~~~
$ mxbuilder distros
~~~
- Install one, for example Ubuntu:
~~~
$ wsl --install -d Ubuntu
~~~`,
		extLinks: []HttpLink{"https://learn.microsoft.com/windows/wsl/install"},
	}

	runtimeUnavailableIssue = &Issue{
		id: RuntimeUnavailableId,
		mdMsg: `
# Python is not available in the distro!

The buildpack compiler runs ` + "`python3 ./build.py`" + ` inside WSL, but the probe failed.

## Things you can try:
- Install the basics inside the distro:
~~~
$ mxbuilder setup --distro Ubuntu
~~~
- Or manually:
~~~
$ wsl -d Ubuntu sh -lc "sudo apt-get update && sudo apt-get install -y python3 python3-pip"
~~~`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# An external command failed!

The command line shown in the log above exited with a non-zero status.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see the full output
- Run the logged command yourself to reproduce the failure
- For base image builds, check that the buildpack directory contains
  ` + "`rootfs-app.dockerfile`" + ` and ` + "`rootfs-builder.dockerfile`",
	}

	imageNotFoundIssue = &Issue{
		id: ImageNotFoundId,
		mdMsg: `
# Local image not found!

Nothing was pushed because the image to publish does not exist locally.

## Things you can try:
- Build it first:
~~~
$ mxbuilder build
~~~
- Check the name and tag:
~~~
$ docker image ls
~~~`,
	}

	missingCredentialIssue = &Issue{
		id: MissingCredentialId,
		mdMsg: `
# Explicit credentials are incomplete!

Explicit credentials need an access key ID, a secret access key **and** a session token.

## Things you can try:
- Provide all three values:
~~~
$ mxbuilder push --credentials explicit \
    --access-key-id ... --secret-access-key ... --session-token ...
~~~
- Or use the credentials already configured for the aws CLI:
~~~
$ mxbuilder push --credentials ambient
~~~`,
	}

	authenticationFailedIssue = &Issue{
		id: AuthenticationFailedId,
		mdMsg: `
# Could not authenticate with AWS!

Either the caller identity check or the ECR login failed.

## Things you can try:
- Check the active identity:
~~~
$ aws sts get-caller-identity
~~~
- Refresh expired session credentials
- Make sure the region matches the ECR repository`,
		extLinks: []HttpLink{"https://docs.aws.amazon.com/AmazonECR/latest/userguide/registry_auth.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be parsed or did not match the schema.

## Things you can try:
- Show the file location:
~~~
$ mxbuilder config path
~~~
- Write a fresh default file:
~~~
$ mxbuilder config init --force
~~~`,
	}

	pipelineBusyIssue = &Issue{
		id: PipelineBusyId,
		mdMsg: `
# A pipeline is already running!

Only one build or push can run at a time. Wait for the current run to finish.`,
	}

	invalidHostPathIssue = &Issue{
		id: InvalidHostPathId,
		mdMsg: `
# Path cannot be mapped into WSL!

Only drive-letter paths such as ` + "`C:\\work\\app`" + ` can be reached under ` + "`/mnt/<drive>`" + `.

## Things you can try:
- Copy the project to a local drive
- Map the network share to a drive letter`,
	}

	issues = map[Id]*Issue{
		toolMissingIssue.Id():          toolMissingIssue,
		invalidEnvironmentIssue.Id():   invalidEnvironmentIssue,
		runtimeUnavailableIssue.Id():   runtimeUnavailableIssue,
		commandFailedIssue.Id():        commandFailedIssue,
		imageNotFoundIssue.Id():        imageNotFoundIssue,
		missingCredentialIssue.Id():    missingCredentialIssue,
		authenticationFailedIssue.Id(): authenticationFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		pipelineBusyIssue.Id():         pipelineBusyIssue,
		invalidHostPathIssue.Id():      invalidHostPathIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
