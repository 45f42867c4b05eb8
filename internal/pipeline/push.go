// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/awscli"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/container"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/events"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/imageref"
)

const (
	// DefaultRemoteTag is the tag pushed to the registry.
	DefaultRemoteTag = "latest"

	// RegistryUsername is the fixed user name for ECR token logins.
	RegistryUsername = "AWS"
)

type (
	// PushConfig describes one push run.
	PushConfig struct {
		ImageName        string
		ImageTag         string
		AccountID        string
		Repository       string
		Region           string
		CredentialSource credentials.Source
		Credentials      credentials.Explicit
		// RemoteTag defaults to DefaultRemoteTag.
		RemoteTag string
	}

	// Push uploads a locally built image to an ECR repository.
	Push struct {
		cfg   PushConfig
		tools Tools
	}
)

// NewPush creates a push pipeline.
func NewPush(cfg PushConfig, tools Tools) *Push {
	return &Push{cfg: cfg, tools: tools.WithDefaults()}
}

// Name implements Pipeline.
func (p *Push) Name() events.Pipeline { return events.PipelinePush }

// Config returns the push configuration.
func (p *Push) Config() PushConfig { return p.cfg }

// Validate implements Pipeline. Explicit credentials are checked by the
// ResolveCredentials step, not here.
func (p *Push) Validate() error {
	if _, err := imageref.New(p.cfg.ImageName, p.cfg.ImageTag); err != nil {
		return &InvalidConfigError{Field: "image", Reason: err.Error()}
	}
	account := strings.TrimSpace(p.cfg.AccountID)
	if account == "" {
		return &InvalidConfigError{Field: "account_id", Reason: "account ID is required"}
	}
	if strings.Trim(account, "0123456789") != "" {
		return &InvalidConfigError{Field: "account_id", Reason: fmt.Sprintf("%q is not numeric", account)}
	}
	if strings.TrimSpace(p.cfg.Repository) == "" {
		return &InvalidConfigError{Field: "repository", Reason: "repository is required"}
	}
	if strings.TrimSpace(p.cfg.Region) == "" {
		return &InvalidConfigError{Field: "region", Reason: "region is required"}
	}
	if err := p.cfg.CredentialSource.Validate(); err != nil {
		return &InvalidConfigError{Field: "credential_source", Reason: err.Error()}
	}
	if err := p.tools.EngineType.Validate(); err != nil {
		return &InvalidConfigError{Field: "container_engine", Reason: err.Error()}
	}
	return nil
}

// Execute implements Pipeline.
func (p *Push) Execute(ctx context.Context, em *events.Emitter) *Result {
	seq := newSequence(em, p.tools.Executor)
	cfg := p.cfg
	account := strings.TrimSpace(cfg.AccountID)
	region := strings.TrimSpace(cfg.Region)
	remoteTag := cfg.RemoteTag
	if remoteTag == "" {
		remoteTag = DefaultRemoteTag
	}

	var (
		engine container.Engine
		cloud  *awscli.CLI
		host   = awscli.RegistryHost(account, region)
		local  = cfg.ImageName + ":" + cfg.ImageTag
	)
	if ref, err := imageref.New(cfg.ImageName, cfg.ImageTag); err == nil {
		local = ref.Local()
	}

	steps := []step{
		{StepValidateTools, func(context.Context) error {
			return seq.runner.Require(p.tools.EngineBinary, p.tools.CloudBinary)
		}},
		{StepResolveCredentials, func(context.Context) error {
			env, err := credentials.Resolve(cfg.CredentialSource, cfg.Credentials, region)
			if err != nil {
				return err
			}
			engine, err = p.tools.engine(seq.runner, env)
			if err != nil {
				return err
			}
			cloud = awscli.New(seq.runner, p.tools.CloudBinary, env)
			seq.info(fmt.Sprintf("using %s credentials for region %s", cfg.CredentialSource, region))
			return nil
		}},
		{StepVerifyLocalImage, func(ctx context.Context) error {
			if !container.NewImageCache(engine).Exists(ctx, local) {
				return &ImageNotFoundError{Ref: local}
			}
			return nil
		}},
		{StepVerifyIdentity, func(ctx context.Context) error {
			id, err := cloud.CallerIdentity(ctx)
			if err != nil {
				return err
			}
			if id.Account != "" && id.Account != account {
				seq.warn(fmt.Sprintf("credentials belong to account %s, pushing to account %s", id.Account, account))
			}
			return nil
		}},
		{StepAuthenticate, func(ctx context.Context) error {
			password, err := cloud.LoginPassword(ctx, region)
			if err != nil {
				return err
			}
			return engine.Login(ctx, host, RegistryUsername, password)
		}},
		{StepTagAndPush, func(ctx context.Context) error {
			remote, err := imageref.Remote(host, cfg.Repository, remoteTag)
			if err != nil {
				return err
			}
			if err := engine.Tag(ctx, local, remote); err != nil {
				return err
			}
			if err := engine.Push(ctx, remote); err != nil {
				return err
			}
			seq.info("pushed " + remote)
			return nil
		}},
	}
	return seq.run(ctx, steps)
}
