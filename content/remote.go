package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// deleteBatchSize is the maximum number of keys per DeleteObjects call,
// imposed by the S3 API.
const deleteBatchSize = 1000

// S3API defines the S3 operations used by the content bucket, allowing
// injection of a mock client in tests.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// RemoteObject is one object currently stored in the remote container.
type RemoteObject struct {
	// Key is the object key.
	Key string

	// ETag is the hex content hash with the surrounding quotes stripped.
	ETag string

	// Size is the object size in bytes.
	Size int64
}

// Bucket is the remote content container for one website instance.
type Bucket struct {
	client S3API
	name   string
	logger *slog.Logger
}

// NewBucket creates a Bucket over the given client.
func NewBucket(client S3API, name string, logger *slog.Logger) *Bucket {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bucket{client: client, name: name, logger: logger}
}

// Name returns the bucket name.
func (b *Bucket) Name() string { return b.name }

// List enumerates all objects in the bucket, following pagination. The
// result is authoritative for what exists remotely right now.
func (b *Bucket) List(ctx context.Context) ([]RemoteObject, error) {
	var objects []RemoteObject
	var continuation *string

	for {
		out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            awsv2.String(b.name),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, fmt.Errorf("s3: list objects in %q: %w", b.name, err)
		}

		for _, obj := range out.Contents {
			var size int64
			if obj.Size != nil {
				size = *obj.Size
			}
			objects = append(objects, RemoteObject{
				Key:  awsv2.ToString(obj.Key),
				ETag: strings.Trim(awsv2.ToString(obj.ETag), `"`),
				Size: size,
			})
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuation = out.NextContinuationToken
	}

	return objects, nil
}

// Upload puts one local file into the bucket under its key.
func (b *Bucket) Upload(ctx context.Context, f LocalFile) error {
	body, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %q for upload: %w", f.Path, err)
	}
	defer body.Close()

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(b.name),
		Key:         awsv2.String(f.Key),
		Body:        body,
		ContentType: awsv2.String(f.ContentType),
	})
	if err != nil {
		return fmt.Errorf("s3: put object %q: %w", f.Key, err)
	}
	return nil
}

// DeleteKeys removes the given keys, batched to respect the API limit.
// A nil or empty key list performs zero calls.
func (b *Bucket) DeleteKeys(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		batch := make([]s3types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			batch = append(batch, s3types.ObjectIdentifier{Key: awsv2.String(key)})
		}

		out, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: awsv2.String(b.name),
			Delete: &s3types.Delete{
				Objects: batch,
				Quiet:   awsv2.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("s3: delete objects in %q: %w", b.name, err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("s3: delete objects in %q: %d keys failed, first: %s: %s",
				b.name, len(out.Errors), awsv2.ToString(first.Key), awsv2.ToString(first.Message))
		}
	}
	return nil
}

// Empty removes every object in the bucket. An already-empty bucket issues
// zero delete calls and succeeds. The bucket resource itself is left for the
// provisioning engine to tear down.
func (b *Bucket) Empty(ctx context.Context) error {
	objects, err := b.List(ctx)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		b.logger.Info("bucket already empty", "bucket", b.name)
		return nil
	}

	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = obj.Key
	}
	if err := b.DeleteKeys(ctx, keys); err != nil {
		return err
	}

	b.logger.Info("bucket emptied", "bucket", b.name, "objects", len(keys))
	return nil
}
