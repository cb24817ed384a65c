package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches a precompiled build manifest from an S3 object.
// Deployments that publish build artifacts to a bucket point the
// server here instead of at a local build directory.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := assets.NewS3Source(s3.NewFromConfig(cfg), "my-bucket", "builds/current/manifest.json")
//	manifest, err := src.Fetch(ctx)
type S3Source struct {
	client S3API
	bucket string
	key    string
}

// NewS3Source creates a manifest source reading bucket/key.
func NewS3Source(client S3API, bucket, key string) *S3Source {
	if key == "" {
		key = ManifestFileName
	}
	return &S3Source{client: client, bucket: bucket, key: key}
}

// DefaultS3Source builds an S3Source with a client from the default AWS
// credential chain.
func DefaultS3Source(ctx context.Context, bucket, key string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Source(s3.NewFromConfig(cfg), bucket, key), nil
}

// Fetch downloads and parses the manifest object.
func (s *S3Source) Fetch(ctx context.Context) (Manifest, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch manifest s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read manifest s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return Parse(data)
}
