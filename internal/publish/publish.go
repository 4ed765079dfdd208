// Package publish uploads rendered reports to external destinations.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

// Publisher delivers a rendered report artifact to a destination and
// returns its location.
type Publisher interface {
	Publish(ctx context.Context, name string, contentType string, body []byte) (string, error)
}

// s3API is the slice of the S3 client the publisher needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads report artifacts to an S3 bucket.
type S3Publisher struct {
	client s3API
	logger logger.Logger
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher for the given bucket using the default
// AWS credential chain.
func NewS3Publisher(ctx context.Context, bucket, prefix, region string, log logger.Logger) (*S3Publisher, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Publisher{
		client: s3.NewFromConfig(cfg),
		logger: log,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// newS3PublisherWithClient is used by tests to inject a fake client.
func newS3PublisherWithClient(client s3API, bucket, prefix string, log logger.Logger) *S3Publisher {
	return &S3Publisher{
		client: client,
		logger: log,
		bucket: bucket,
		prefix: prefix,
	}
}

// Publish uploads one artifact and returns its s3:// location.
func (p *S3Publisher) Publish(ctx context.Context, name string, contentType string, body []byte) (string, error) {
	key := path.Join(p.prefix, name)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to s3://%s/%s: %w", name, p.bucket, key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	p.logger.Info("published report artifact", "location", location)
	return location, nil
}
