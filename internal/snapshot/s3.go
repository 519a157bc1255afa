package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store persists a single image blob as one object in an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	key    string
}

// S3StoreConfig configures an S3Store.
type S3StoreConfig struct {
	// Bucket is the S3 bucket holding the image blob.
	Bucket string

	// Key is the object key the image blob is stored under.
	Key string

	// Region overrides the default AWS region resolution chain.
	Region string

	// Endpoint overrides the S3 endpoint, for S3-compatible services
	// such as Localstack or MinIO used in integration tests.
	Endpoint string
}

// NewS3Store builds an S3 client via the default AWS credential and
// region chain, then verifies bucket access.
func NewS3Store(ctx context.Context, cfg S3StoreConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 snapshot: bucket is required")
	}
	if cfg.Key == "" {
		cfg.Key = "ospfs-image"
	}

	var opts []func(*awsConfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		//nolint:staticcheck // matches the AWS SDK v2 API available today
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.Endpoint, HostnameImmutable: true, Source: aws.EndpointSourceCustom}, nil
			},
		)
		//nolint:staticcheck // matches the AWS SDK v2 API available today
		opts = append(opts, awsConfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// Load downloads the image object and returns its full contents.
func (s *S3Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 snapshot load: %w", err)
	}
	defer result.Body.Close()

	buf, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 snapshot load: %w", err)
	}
	return buf, nil
}

// Save uploads buf as the image object, replacing any previous version.
func (s *S3Store) Save(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Body:   bytes.NewReader(buf),
	})
	if err != nil {
		return fmt.Errorf("s3 snapshot save: %w", err)
	}
	return nil
}

// Close is a no-op; the S3 client owns no local resources to release.
func (s *S3Store) Close() error { return nil }
