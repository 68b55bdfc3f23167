package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"

	"sportify-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

func R2ConfigFrom(cfg *config.Config) R2Config {
	return R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
}

// R2Uploader stores objects in a Cloudflare R2 bucket through the S3 API.
// The S3 client is created on the first upload.
type R2Uploader struct {
	cfg R2Config

	once      sync.Once
	client    *s3.Client
	clientErr error
}

func NewR2Uploader(cfg R2Config) *R2Uploader {
	return &R2Uploader{cfg: cfg}
}

func (u *R2Uploader) s3Client(ctx context.Context) (*s3.Client, error) {
	u.once.Do(func() {
		c := u.cfg
		if c.AccountID == "" || c.AccessKeyID == "" || c.SecretAccessKey == "" || c.BucketName == "" || c.PublicBaseURL == "" {
			u.clientErr = errors.New("invalid Cloudflare R2 configuration: all fields are required")
			return
		}

		sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion("auto"),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")),
		)
		if err != nil {
			u.clientErr = fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
			return
		}

		endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
		u.client = s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	})
	return u.client, u.clientErr
}

func (u *R2Uploader) Upload(ctx context.Context, key, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	client, err := u.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.BucketName),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to R2 (key: %s): %w", key, err)
	}

	ext := path.Ext(key)
	return &UploadResult{
		URL:      PublicURL(u.cfg.PublicBaseURL, key),
		PublicID: strings.TrimSuffix(key, ext),
		Format:   strings.TrimPrefix(ext, "."),
		Bytes:    size,
	}, nil
}

// PublicURL joins the public bucket URL and the object key.
func PublicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return ""
	}
	keyURL, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(keyURL).String()
}
