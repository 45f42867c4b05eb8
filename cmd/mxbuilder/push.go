// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/app"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/config"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/credentials"
	"github.com/SunilSathipathi/mendix-v6-desktop-builder/internal/pipeline"
)

type pushFlags struct {
	image, tag, accountID, repository, region, remoteTag string
	source                                              string
	accessKeyID                                         string
}

func newPushCommand(app *App) *cobra.Command {
	var f pushFlags
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push the built image to an ECR repository",
		Long: `Tag the local image as <account>.dkr.ecr.<region>.amazonaws.com/<repository>:latest
and push it.

With --credentials ambient (the default) the AWS CLI resolves credentials on
its own. With --credentials explicit, the secret key and session token are read
only from MXBUILDER_AWS_SECRET_ACCESS_KEY and MXBUILDER_AWS_SESSION_TOKEN so
they never appear in shell history or process listings. The access key ID
comes from --access-key-id or MXBUILDER_AWS_ACCESS_KEY_ID. All three are
passed only to this push's commands and never stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, app, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.image, "image", "", "local image name (build.image)")
	fl.StringVar(&f.tag, "tag", "", "local image tag (build.tag)")
	fl.StringVar(&f.accountID, "account-id", "", "12-digit AWS account ID (push.account_id)")
	fl.StringVar(&f.repository, "repository", "", "ECR repository name (push.repository)")
	fl.StringVar(&f.region, "region", "", "AWS region (push.region)")
	fl.StringVar(&f.remoteTag, "remote-tag", "", "tag to push (push.remote_tag)")
	fl.StringVar(&f.source, "credentials", "", "credential source: ambient or explicit (push.credential_source)")
	fl.StringVar(&f.accessKeyID, "access-key-id", "", "explicit AWS access key ID (secrets come from MXBUILDER_AWS_* only)")
	return cmd
}

func runPush(cmd *cobra.Command, a *App, f pushFlags) error {
	cfg, err := a.Config(cmd.Context())
	if err != nil {
		return a.configFailure(err)
	}

	fl := cmd.Flags()
	fromEnv := config.CredentialsFromEnv(a.getenv)
	pc := pipeline.PushConfig{
		ImageName:        pick(fl.Changed("image"), f.image, cfg.Build.Image),
		ImageTag:         pick(fl.Changed("tag"), f.tag, cfg.Build.Tag),
		AccountID:        pick(fl.Changed("account-id"), f.accountID, cfg.Push.AccountID),
		Repository:       pick(fl.Changed("repository"), f.repository, cfg.Push.Repository),
		Region:           pick(fl.Changed("region"), f.region, cfg.Push.Region),
		RemoteTag:        pick(fl.Changed("remote-tag"), f.remoteTag, cfg.Push.RemoteTag),
		CredentialSource: pick(fl.Changed("credentials"), credentials.Source(f.source), cfg.Push.CredentialSource),
		Credentials: credentials.Explicit{
			AccessKeyID:     pick(fl.Changed("access-key-id"), f.accessKeyID, fromEnv.AccessKeyID),
			SecretAccessKey: fromEnv.SecretAccessKey,
			SessionToken:    fromEnv.SessionToken,
		},
	}
	return a.runPipeline(cmd, cfg, "push image", func(ctx context.Context, svc *app.Service) (*app.Run, error) {
		return svc.StartPush(ctx, pc)
	})
}
