package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures S3Host. Endpoint is optional and selects an
// S3-compatible service with path-style addressing.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// S3Host stores images in an S3 bucket.
type S3Host struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Host builds an S3 client from static credentials.
func NewS3Host(ctx context.Context, cfg S3Config) (*S3Host, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimSpace(cfg.PublicURL)
	if publicURL == "" {
		if endpoint != "" {
			publicURL = joinURL(endpoint, cfg.Bucket)
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &S3Host{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (h *S3Host) Name() string { return "s3" }

func (h *S3Host) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return Object{}, err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(cleaned),
		Body:          r,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := h.client.PutObject(ctx, input); err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", cleaned, err)
	}
	return Object{Key: cleaned, URL: joinURL(h.publicURL, cleaned), Size: size}, nil
}

func (h *S3Host) Delete(ctx context.Context, key string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	if _, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(cleaned),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", cleaned, err)
	}
	return nil
}

func (h *S3Host) KeyFromURL(rawURL string) (string, bool) {
	return trimURLPrefix(rawURL, h.publicURL)
}
