// Package s3 stores card images in an S3-compatible bucket (AWS or MinIO)
// and hands back public URLs for the stored objects.
package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/unbox-app/unbox/internal/common"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// Config carries the bucket coordinates and credentials.
type Config struct {
	Region        string
	AccessKey     string
	SecretKey     string
	BaseEndpoint  string
	Bucket        string
	PublicBaseURL string
}

// Uploader writes image payloads to the bucket.
type Uploader struct {
	cfg Config
}

// NewUploader constructs an Uploader for the given bucket coordinates.
func NewUploader(cfg Config) *Uploader {
	return &Uploader{cfg: cfg}
}

func (u *Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey,
			u.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}
	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// storageKey returns a date-bucketed object key with a random name.
func storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("cards/%d/%d/%d/%v.%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// UploadDataURL stores an inline data URL as a bucket object and returns its
// public URL. Strings that are not data URLs (already-hosted URLs, empty
// slots) are returned unchanged, so creation payloads can mix fresh uploads
// with existing links.
func (u *Uploader) UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return dataURL, nil
	}

	contentType, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	client, err := u.client(ctx)
	if err != nil {
		return "", err
	}

	key := storageKey(extForContentType(contentType))
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.PublicBaseURL, "/"), u.cfg.Bucket, key), nil
}

// parseDataURL splits a base64 data URL into content type and raw bytes.
func parseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data url", common.ErrValidation)
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: malformed data url", common.ErrValidation)
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("%w: unsupported data url encoding", common.ErrValidation)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: bad base64 payload", common.ErrValidation)
	}
	return contentType, payload, nil
}

func extForContentType(ct string) string {
	switch ct {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
