package workflows

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/sitelock/internal/audit"
	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/page"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ArtifactContentType is the Content-Type artifacts are served with.
const ArtifactContentType = "text/html; charset=utf-8"

// Uploader is the part of the S3 client publish needs.
type Uploader interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// PublishOptions configures the publish workflow.
type PublishOptions struct {
	Artifact string
	Bucket   string

	// Key is the object key. Defaults to "index.html".
	Key string

	Region   string
	Endpoint string

	// CacheControl is sent with the object when set.
	CacheControl string

	AuditLog string

	// Uploader overrides the S3 client built from Region and Endpoint.
	Uploader Uploader
}

// PublishResult contains the outcome of a publish operation.
type PublishResult struct {
	Target   string
	Bytes    int64
	ETag     string
	AuditErr error
}

// NewS3Uploader returns an S3 client for region, optionally pointed at an
// S3-compatible endpoint. Credentials come from the usual AWS environment.
func NewS3Uploader(region, endpoint string) (Uploader, error) {
	cfg := aws.Config{
		Region: aws.String(region),
	}

	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return s3.New(sess), nil
}

// Publish uploads an artifact to an S3 bucket for static hosting.
//
// The file must be an artifact; publishing a plain site by mistake would
// expose it, so ErrEnvelopeNotFound is returned before anything is sent.
func Publish(ctx context.Context, opts PublishOptions) (*PublishResult, error) {
	if opts.Bucket == "" {
		return nil, kerrors.ErrBucketMissing
	}

	key := strings.TrimPrefix(opts.Key, "/")
	if key == "" {
		key = "index.html"
	}

	data, err := os.ReadFile(opts.Artifact)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	if _, err := page.ExtractEnvelope(data); err != nil {
		return nil, err
	}

	uploader := opts.Uploader
	if uploader == nil {
		uploader, err = NewS3Uploader(opts.Region, opts.Endpoint)
		if err != nil {
			return nil, err
		}
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ArtifactContentType),
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}

	out, err := uploader.PutObjectWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to upload artifact to S3: %w", err)
	}

	result := &PublishResult{
		Target: fmt.Sprintf("s3://%s/%s", opts.Bucket, key),
		Bytes:  int64(len(data)),
	}
	if out != nil {
		result.ETag = aws.StringValue(out.ETag)
	}

	entry := audit.NewEntry("publish")
	entry.Output = opts.Artifact
	entry.Target = result.Target
	entry.Bytes = result.Bytes
	result.AuditErr = audit.Log(opts.AuditLog, entry)

	return result, nil
}
