package cdn

import (
	"context"
	"errors"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

type mockCloudFrontClient struct {
	createFunc func(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)

	calls  int
	inputs []*cloudfront.CreateInvalidationInput
}

func (m *mockCloudFrontClient) CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error) {
	m.calls++
	m.inputs = append(m.inputs, params)
	if m.createFunc != nil {
		return m.createFunc(ctx, params, optFns...)
	}
	return &cloudfront.CreateInvalidationOutput{
		Invalidation: &cftypes.Invalidation{
			Id: awsv2.String("I2J3K4L5M6N7O8"),
		},
	}, nil
}

func TestInvalidateAll_SingleWildcardRequest(t *testing.T) {
	client := &mockCloudFrontClient{}
	inv := NewInvalidator(client, nil)

	if err := inv.InvalidateAll(context.Background(), "E1ABCDEF"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly 1 invalidation request, got %d", client.calls)
	}

	input := client.inputs[0]
	if got := awsv2.ToString(input.DistributionId); got != "E1ABCDEF" {
		t.Errorf("DistributionId = %q, want E1ABCDEF", got)
	}
	paths := input.InvalidationBatch.Paths
	if len(paths.Items) != 1 || paths.Items[0] != "/*" {
		t.Errorf("paths = %v, want [/*]", paths.Items)
	}
	if awsv2.ToInt32(paths.Quantity) != 1 {
		t.Errorf("quantity = %d, want 1", awsv2.ToInt32(paths.Quantity))
	}
}

func TestInvalidateAll_UniqueCallerReference(t *testing.T) {
	client := &mockCloudFrontClient{}
	inv := NewInvalidator(client, nil)

	if err := inv.InvalidateAll(context.Background(), "E1ABCDEF"); err != nil {
		t.Fatal(err)
	}
	if err := inv.InvalidateAll(context.Background(), "E1ABCDEF"); err != nil {
		t.Fatal(err)
	}

	first := awsv2.ToString(client.inputs[0].InvalidationBatch.CallerReference)
	second := awsv2.ToString(client.inputs[1].InvalidationBatch.CallerReference)
	if first == "" || second == "" {
		t.Fatal("expected non-empty caller references")
	}
	if first == second {
		t.Errorf("caller references must differ between requests, both were %q", first)
	}
}

func TestInvalidateAll_ErrorSurfaces(t *testing.T) {
	client := &mockCloudFrontClient{
		createFunc: func(_ context.Context, _ *cloudfront.CreateInvalidationInput, _ ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error) {
			return nil, errors.New("rate exceeded")
		},
	}
	inv := NewInvalidator(client, nil)

	err := inv.InvalidateAll(context.Background(), "E1ABCDEF")
	if err == nil {
		t.Fatal("expected error to surface")
	}
	if client.calls != 1 {
		t.Errorf("expected no retry, got %d calls", client.calls)
	}
}

func TestInvalidateAll_RequiresDistributionID(t *testing.T) {
	client := &mockCloudFrontClient{}
	inv := NewInvalidator(client, nil)

	if err := inv.InvalidateAll(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty distribution id")
	}
	if client.calls != 0 {
		t.Errorf("expected no API calls, got %d", client.calls)
	}
}
