package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/deploy"
	"github.com/wayfind-dev/wayfind/pkg/manifest"
)

func deployCmd() *cobra.Command {
	var buildDir string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Publish the built app to the configured target",
		Long: `Publish the build output directory to the deploy target from
wayfind.json, along with the route manifest and per-route copies of the
app shell so static hosts serve deep links.

Targets:
  "deploy": {"dir": "/var/www/app"}
  "deploy": {"s3": {"bucket": "my-bucket", "prefix": "app/"}}

Examples:
  wayfind deploy
  wayfind deploy --build-dir=out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), buildDir)
		},
	}

	cmd.Flags().StringVarP(&buildDir, "build-dir", "d", "", "Build directory to publish (default from wayfind.json)")

	return cmd
}

func runDeploy(ctx context.Context, buildDir string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if cfg.Deploy == nil {
		return errors.New("E061")
	}

	tbl, err := tableFromConfig(cfg)
	if err != nil {
		return err
	}

	if buildDir == "" {
		buildDir = cfg.BuildPath()
	}

	m := manifest.FromTable(tbl)
	m.App = cfg.Name
	site := deploy.Site{BuildDir: buildDir, Manifest: m}

	pub, target, err := publisherFor(ctx, cfg.Deploy)
	if err != nil {
		return err
	}

	info("publishing %s to %s", buildDir, target)
	if err := pub.Publish(ctx, site); err != nil {
		return errors.New("E051").Wrap(err)
	}

	success("deployed %d routes to %s", len(m.Routes), target)
	return nil
}

// publisherFor builds the Publisher for the configured target.
func publisherFor(ctx context.Context, dc *config.DeployConfig) (deploy.Publisher, string, error) {
	if dc.Dir != "" {
		pub, err := deploy.NewDiskPublisher(dc.Dir)
		if err != nil {
			return nil, "", errors.New("E051").Wrap(err)
		}
		return pub, dc.Dir, nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if dc.S3.Region != "" {
		opts = append(opts, awsconfig.WithRegion(dc.S3.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, "", errors.New("E052").Wrap(err)
	}

	pub := deploy.NewS3Publisher(s3.NewFromConfig(awsCfg), dc.S3.Bucket, dc.S3.Prefix)
	if dc.CacheControl != "" {
		pub.WithCacheControl(dc.CacheControl)
	}
	return pub, "s3://" + dc.S3.Bucket + "/" + dc.S3.Prefix, nil
}
