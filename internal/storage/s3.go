package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3 stores objects in any S3 compatible bucket. Endpoint is set for
// non-AWS providers such as Supabase storage or MinIO.
type S3 struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

func NewS3(opts S3Options) (*S3, error) {
	if opts.Bucket == "" || opts.Region == "" {
		return nil, fmt.Errorf("S3_BUCKET and S3_REGION are required")
	}

	cfg := &aws.Config{Region: aws.String(opts.Region)}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	publicURL := opts.PublicURL
	switch {
	case publicURL != "":
	case opts.Endpoint != "":
		publicURL = joinURL(opts.Endpoint, opts.Bucket)
	default:
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &S3{
		client:    s3.New(sess),
		bucket:    opts.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *S3) Mode() string { return "s3" }

func (s *S3) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return joinURL(s.publicURL, key), nil
}

func (s *S3) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3) KeyOf(url string) (string, bool) {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
