// Package storage implements the media-host adapter on top of S3-compatible
// object storage.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"media_backend/internal/feature/auth/usecase"
)

// Config holds the media-host connection settings.
type Config struct {
	Region          string
	BaseEndpoint    string // non-empty for MinIO-style hosts
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL is the address assets are served from. When empty, URLs
	// are built from the endpoint and bucket.
	PublicBaseURL string
}

// s3API is the subset of the S3 client the uploader uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader uploads locally staged files to the media host.
type S3Uploader struct {
	client s3API
	cfg    Config
}

// Compile-time check to ensure S3Uploader implements MediaUploader.
var _ usecase.MediaUploader = (*S3Uploader)(nil)

// NewS3Uploader builds an uploader with static credentials and an optional
// custom endpoint. The HTTP client is injected so timeouts are controlled by
// the caller.
func NewS3Uploader(ctx context.Context, cfg Config, httpClient *http.Client) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{client: client, cfg: cfg}, nil
}

// Upload sends the file at localPath to the media host and returns its URL.
// An empty path short-circuits to (nil, nil): an absent optional file is not
// an error. On a remote failure the local temp file is removed and an error
// wrapping usecase.ErrUploadFailed is returned.
func (u *S3Uploader) Upload(ctx context.Context, localPath string) (*usecase.UploadResult, error) {
	if localPath == "" {
		return nil, nil
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", usecase.ErrUploadFailed, localPath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close staged file", "path", localPath, "error", err)
		}
	}()

	key := objectKey(localPath)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentTypeFor(localPath)),
	})
	if err != nil {
		// The staged file is unusable now; remove it so failed uploads do
		// not accumulate local orphans.
		if rmErr := os.Remove(localPath); rmErr != nil {
			slog.Warn("failed to remove staged file", "path", localPath, "error", rmErr)
		}
		return nil, fmt.Errorf("%w: put %s: %v", usecase.ErrUploadFailed, key, err)
	}

	slog.Info("media uploaded", "key", key, "bucket", u.cfg.Bucket)
	return &usecase.UploadResult{URL: u.assetURL(key), Key: key}, nil
}

// objectKey builds a collision-free, date-partitioned object key that keeps
// the original file extension.
func objectKey(localPath string) string {
	now := time.Now()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), uuid.New(), strings.ToLower(filepath.Ext(localPath)))
}

// contentTypeFor derives the content type from the file extension.
func contentTypeFor(localPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// assetURL builds the public address of a stored object.
func (u *S3Uploader) assetURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.BaseEndpoint, "/"), u.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
