// Package awsclient constructs the AWS SDK clients the website component
// uses. Credentials come from the default chain; a custom endpoint switches
// the S3 client into path-style addressing for LocalStack/MinIO.
package awsclient

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Clients bundles the service clients used by a website component.
type Clients struct {
	S3         *s3.Client
	CloudFront *cloudfront.Client
}

// Options configures client construction.
type Options struct {
	// Region is the AWS region. Required.
	Region string

	// Endpoint overrides the S3 endpoint for LocalStack/MinIO. Optional.
	Endpoint string
}

// New loads the default AWS configuration and builds the service clients.
func New(ctx context.Context, opts Options) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = &opts.Endpoint
			o.UsePathStyle = true
		})
	}

	return &Clients{
		S3:         s3.NewFromConfig(cfg, s3Opts...),
		CloudFront: cloudfront.NewFromConfig(cfg),
	}, nil
}
