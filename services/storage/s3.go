package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"storescrapers/catalogworker/logger"
)

// S3Backend implements Backend using an S3 bucket
type S3Backend struct {
	client *s3.Client
	bucket string
	log    *logger.Logger
}

// NewS3Backend creates a new S3 backend using the default AWS
// credential chain
func NewS3Backend(ctx context.Context, bucket string) (*S3Backend, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3Backend{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		log:    logger.ForStorage(),
	}, nil
}

// Put uploads body to the bucket under key
func (b *S3Backend) Put(ctx context.Context, key string, contentType string, body []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3 object %s: %w", key, err)
	}

	b.log.Debug().
		Str("bucket", b.bucket).
		Str("key", key).
		Int("bytes", len(body)).
		Msg("Uploaded object")
	return nil
}

// Name returns the backend name
func (b *S3Backend) Name() string {
	return "s3"
}
