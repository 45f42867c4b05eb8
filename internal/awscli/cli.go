// SPDX-License-Identifier: MPL-2.0

// Package awscli wraps the two AWS CLI calls a push needs: the caller
// identity check and the ECR login password.
package awscli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/command"
)

// DefaultProgram is the AWS CLI executable name.
const DefaultProgram = "aws"

type (
	// CLI runs AWS CLI commands with per-invocation environment overrides.
	CLI struct {
		runner  *command.Runner
		program string
		env     map[string]string
	}

	// Identity is the decoded `sts get-caller-identity` response.
	Identity struct {
		UserID  string `json:"UserId"`
		Account string `json:"Account"`
		ARN     string `json:"Arn"`
	}
)

// New creates a CLI. env is applied to every invocation; an empty program
// means DefaultProgram.
func New(runner *command.Runner, program string, env map[string]string) *CLI {
	if program == "" {
		program = DefaultProgram
	}
	return &CLI{runner: runner, program: program, env: env}
}

// Program returns the CLI executable.
func (c *CLI) Program() string {
	return c.program
}

// CallerIdentity runs `sts get-caller-identity`. A non-zero exit is an error.
// Output that is not the expected JSON yields an empty Identity, since only
// the exit status decides whether the credentials work.
func (c *CLI) CallerIdentity(ctx context.Context) (Identity, error) {
	out, err := c.runner.Output(ctx, c.invocation("sts", "get-caller-identity"))
	if err != nil {
		return Identity{}, err
	}
	var id Identity
	if jerr := json.Unmarshal([]byte(out), &id); jerr != nil {
		return Identity{}, nil
	}
	return id, nil
}

// LoginPassword runs `ecr get-login-password --region <region>` and returns
// the registry password. The value must only ever be passed on stdin.
func (c *CLI) LoginPassword(ctx context.Context, region string) (string, error) {
	out, err := c.runner.Output(ctx, c.invocation("ecr", "get-login-password", "--region", region))
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("ecr get-login-password returned an empty password for region %s", region)
	}
	return out, nil
}

func (c *CLI) invocation(args ...string) command.Invocation {
	return command.New(c.program, args...).WithEnv(c.env)
}

// RegistryHost returns the ECR registry host for account and region, e.g.
// 123456789012.dkr.ecr.ap-south-1.amazonaws.com. China regions use the
// amazonaws.com.cn partition.
func RegistryHost(account, region string) string {
	account = strings.TrimSpace(account)
	region = strings.TrimSpace(region)
	suffix := "amazonaws.com"
	if strings.HasPrefix(region, "cn-") {
		suffix = "amazonaws.com.cn"
	}
	return fmt.Sprintf("%s.dkr.ecr.%s.%s", account, region, suffix)
}
