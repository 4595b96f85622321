// Package media talks to the S3-compatible host that keeps report photos.
package media

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	URLTTL    time.Duration
}

// Client hands out presigned read URLs and removes objects from one bucket.
type Client struct {
	mc     *minio.Client
	bucket string
	urlTTL time.Duration
}

// New connects to the media host and creates the bucket if it is missing.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	exists, err := c.mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		zap.L().Info("media bucket created", zap.String("bucket", cfg.Bucket))
	}
	return c, nil
}

func newClient(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media client: %w", err)
	}

	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Client{mc: mc, bucket: cfg.Bucket, urlTTL: ttl}, nil
}

// PresignedURL returns a time-limited GET link for the object named ref.
func (c *Client) PresignedURL(ctx context.Context, ref string) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, ref, c.urlTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", ref, err)
	}
	return u.String(), nil
}

func (c *Client) Remove(ctx context.Context, ref string) error {
	if err := c.mc.RemoveObject(ctx, c.bucket, ref, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", ref, err)
	}
	return nil
}
