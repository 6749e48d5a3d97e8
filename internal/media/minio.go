package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig configures MinIOHost.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// MinIOHost stores images in a MinIO bucket.
type MinIOHost struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOHost connects to MinIO and creates the bucket when missing.
func NewMinIOHost(ctx context.Context, cfg MinIOConfig) (*MinIOHost, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	publicURL := strings.TrimSpace(cfg.PublicURL)
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &MinIOHost{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (h *MinIOHost) Name() string { return "minio" }

func (h *MinIOHost) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return Object{}, err
	}
	info, err := h.client.PutObject(ctx, h.bucket, cleaned, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", cleaned, err)
	}
	return Object{Key: cleaned, URL: joinURL(h.publicURL, cleaned), Size: info.Size}, nil
}

func (h *MinIOHost) Delete(ctx context.Context, key string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	if err := h.client.RemoveObject(ctx, h.bucket, cleaned, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", cleaned, err)
	}
	return nil
}

func (h *MinIOHost) KeyFromURL(rawURL string) (string, bool) {
	return trimURLPrefix(rawURL, h.publicURL)
}
