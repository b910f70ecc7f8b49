package website

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoCodeAlone/staticsite/cdn"
	"github.com/GoCodeAlone/staticsite/content"
	"github.com/GoCodeAlone/staticsite/host"
)

// Coordinator ties configuration, provisioned identifiers, content sync, and
// cache invalidation into the deploy/remove lifecycle of one website
// instance. It owns no durable state; everything durable lives in the remote
// resources and the host's stack-output store. All hooks are idempotent.
type Coordinator struct {
	cfg         *Config
	outputs     host.StackOutputs
	s3          content.S3API
	invalidator *cdn.Invalidator
	logger      *slog.Logger
	concurrency int
}

// Compile-time interface check.
var _ host.Component = (*Coordinator)(nil)

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithUploadConcurrency caps parallel upload requests during sync.
func WithUploadConcurrency(n int) CoordinatorOption {
	return func(c *Coordinator) { c.concurrency = n }
}

// NewCoordinator creates a Coordinator for a validated config. The S3 and
// CloudFront clients are injected so tests can substitute mocks.
func NewCoordinator(cfg *Config, outputs host.StackOutputs, s3 content.S3API, cf cdn.CloudFrontAPI, logger *slog.Logger, opts ...CoordinatorOption) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		cfg:         cfg,
		outputs:     outputs,
		s3:          s3,
		invalidator: cdn.NewInvalidator(cf, logger),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload syncs the local content directory into the provisioned bucket and
// invalidates the CDN cache when anything changed. Safe to re-run; an
// unchanged sync performs zero remote mutations and skips invalidation.
func (c *Coordinator) Upload(ctx context.Context) error {
	bucketName, err := c.resolveRequired(ctx, "upload", OutputBucketName)
	if err != nil {
		return err
	}

	bucket := content.NewBucket(c.s3, bucketName, c.logger)
	var syncOpts []content.SyncerOption
	if c.concurrency > 0 {
		syncOpts = append(syncOpts, content.WithConcurrency(c.concurrency))
	}
	syncer := content.NewSyncer(bucket, c.logger, syncOpts...)

	changed, err := syncer.Sync(ctx, c.cfg.Path)
	if err != nil {
		return err
	}

	if changed {
		distributionID, err := c.resolveRequired(ctx, "upload", OutputDistributionID)
		if err != nil {
			return err
		}
		if err := c.invalidator.InvalidateAll(ctx, distributionID); err != nil {
			return err
		}
	}

	url, err := c.resolveURL(ctx)
	if err != nil {
		return err
	}
	if url != nil {
		c.logger.Info("website deployed", "site", c.cfg.Name, "url", *url, "changed", changed)
	}
	return nil
}

// PostDeploy implements host.Component. The host calls it after resource
// provisioning; it triggers the content upload.
func (c *Coordinator) PostDeploy(ctx context.Context) error {
	return c.Upload(ctx)
}

// PreRemove implements host.Component. It empties the content bucket so the
// provisioning engine can delete it; resource deletion refuses non-empty
// containers. A bucket that was never provisioned or is already empty is a
// no-op success.
func (c *Coordinator) PreRemove(ctx context.Context) error {
	bucketName, ok, err := c.resolve(ctx, OutputBucketName)
	if err != nil {
		return err
	}
	if !ok {
		c.logger.Info("no bucket to empty", "site", c.cfg.Name)
		return nil
	}
	return content.NewBucket(c.s3, bucketName, c.logger).Empty(ctx)
}

// Commands implements host.Component.
func (c *Coordinator) Commands() map[string]host.Command {
	return map[string]host.Command{
		"upload": c.Upload,
	}
}

// Outputs implements host.Component.
func (c *Coordinator) Outputs() map[string]host.OutputResolver {
	return map[string]host.OutputResolver{
		"url":   c.URL,
		"cname": c.CNAME,
	}
}

// References implements host.Component. The website is a leaf in the
// dependency graph; nothing depends on its internal resources.
func (c *Coordinator) References() map[string]string {
	return map[string]string{}
}

// URL resolves the effective site URL: the first configured custom domain,
// or the CDN's default hostname when none is configured. Nil when resources
// were never provisioned.
func (c *Coordinator) URL(ctx context.Context) (*string, error) {
	return c.resolveURL(ctx)
}

// CNAME resolves the CDN hostname of the distribution. Nil when resources
// were never provisioned.
func (c *Coordinator) CNAME(ctx context.Context) (*string, error) {
	cname, ok, err := c.resolve(ctx, OutputCNAME)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &cname, nil
}

func (c *Coordinator) resolveURL(ctx context.Context) (*string, error) {
	hostname := c.cfg.PrimaryDomain()
	if hostname == "" {
		cname, ok, err := c.resolve(ctx, OutputCNAME)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		hostname = cname
	}
	url := "https://" + hostname
	return &url, nil
}

// resolve looks up one qualified stack output for this site.
func (c *Coordinator) resolve(ctx context.Context, output string) (string, bool, error) {
	name := QualifiedOutput(c.cfg.Name, output)
	value, ok, err := c.outputs.GetOutput(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("resolve stack output %q: %w", name, err)
	}
	return value, ok, nil
}

// resolveRequired is resolve for outputs that must exist before an operation
// can proceed; absence is a sequencing problem, not a remote failure.
func (c *Coordinator) resolveRequired(ctx context.Context, operation, output string) (string, error) {
	value, ok, err := c.resolve(ctx, output)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return "", &SequencingError{
			Site:      c.cfg.Name,
			Operation: operation,
			Missing:   QualifiedOutput(c.cfg.Name, output),
		}
	}
	return value, nil
}
