package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveStore keeps a copy of every imported price list
//
//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks -source=archive.go ArchiveStore
type ArchiveStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type S3Archive struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// S3ConfigFromEnv reads ARCHIVE_* variables. An empty bucket means archiving is off.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Endpoint:  os.Getenv("ARCHIVE_ENDPOINT"),
		Region:    os.Getenv("ARCHIVE_REGION"),
		AccessKey: os.Getenv("ARCHIVE_ACCESS_KEY"),
		SecretKey: os.Getenv("ARCHIVE_SECRET_KEY"),
		Bucket:    os.Getenv("ARCHIVE_BUCKET"),
		PublicURL: os.Getenv("ARCHIVE_PUBLIC_BASE_URL"),
	}
}

func NewS3Archive(ctx context.Context, cfg S3Config) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		baseURL = "s3://" + cfg.Bucket
	}

	return &S3Archive{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

var _ ArchiveStore = (*S3Archive)(nil)

func (a *S3Archive) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", a.baseURL, key), nil
}

// ArchiveKey builds "pricelists/2024/03/{snapshotID}/{file}".
func ArchiveKey(importedAt time.Time, snapshotID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = "pricelist.txt"
	}
	return path.Join("pricelists", importedAt.UTC().Format("2006/01"), snapshotID, name)
}
