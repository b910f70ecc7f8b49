// Package cdn issues cache invalidations against the CDN distribution
// fronting a website's content bucket. Invalidation always covers the whole
// content namespace; correctness favors simplicity over per-path cost
// optimization.
package cdn

import (
	"context"
	"fmt"
	"log/slog"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/google/uuid"
)

// wildcardPath invalidates the entire content namespace.
const wildcardPath = "/*"

// CloudFrontAPI defines the CloudFront operations used by the invalidator,
// allowing injection of a mock client in tests.
type CloudFrontAPI interface {
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
}

// Invalidator creates wildcard invalidations for a distribution.
type Invalidator struct {
	client CloudFrontAPI
	logger *slog.Logger
}

// NewInvalidator creates an Invalidator over the given client.
func NewInvalidator(client CloudFrontAPI, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{client: client, logger: logger}
}

// InvalidateAll issues exactly one invalidation covering every path served
// by the distribution. The caller reference must be unique per request or
// the API deduplicates the batch, so a fresh UUID is used each time.
// Failures surface to the caller; there is no automatic retry.
func (i *Invalidator) InvalidateAll(ctx context.Context, distributionID string) error {
	if distributionID == "" {
		return fmt.Errorf("cloudfront: distribution id is required")
	}

	out, err := i.client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: awsv2.String(distributionID),
		InvalidationBatch: &cftypes.InvalidationBatch{
			CallerReference: awsv2.String(uuid.NewString()),
			Paths: &cftypes.Paths{
				Quantity: awsv2.Int32(1),
				Items:    []string{wildcardPath},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("cloudfront: create invalidation for %q: %w", distributionID, err)
	}

	invalidationID := ""
	if out.Invalidation != nil {
		invalidationID = awsv2.ToString(out.Invalidation.Id)
	}
	i.logger.Info("cache invalidated", "distribution", distributionID, "invalidation", invalidationID)
	return nil
}
