package publish

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3PublisherPublish(t *testing.T) {
	fake := &fakeS3{}
	pub := newS3PublisherWithClient(fake, "reports-bucket", "reportgc", logger.NewMockLogger())

	location, err := pub.Publish(context.Background(), "20260829-101500/report.json", "application/json", []byte(`{"grade":"A"}`))
	require.NoError(t, err)

	assert.Equal(t, "s3://reports-bucket/reportgc/20260829-101500/report.json", location)
	require.Len(t, fake.inputs, 1)
	assert.Equal(t, "reports-bucket", *fake.inputs[0].Bucket)
	assert.Equal(t, "reportgc/20260829-101500/report.json", *fake.inputs[0].Key)
	assert.Equal(t, "application/json", *fake.inputs[0].ContentType)
	assert.Equal(t, []byte(`{"grade":"A"}`), fake.bodies[0])
}

func TestS3PublisherNoPrefix(t *testing.T) {
	fake := &fakeS3{}
	pub := newS3PublisherWithClient(fake, "reports-bucket", "", logger.NewMockLogger())

	location, err := pub.Publish(context.Background(), "report.html", "text/html", []byte("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports-bucket/report.html", location)
}

func TestS3PublisherError(t *testing.T) {
	fake := &fakeS3{err: assert.AnError}
	pub := newS3PublisherWithClient(fake, "reports-bucket", "reportgc", logger.NewMockLogger())

	_, err := pub.Publish(context.Background(), "report.json", "application/json", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploading report.json")
}
