// Package r2 stores order photos and print files in a Cloudflare R2 bucket
// through its S3-compatible API.
package r2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"footprint/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MaxObjectBytes bounds a single download. Customer photos above it are refused.
const MaxObjectBytes = 64 << 20

// Config locates the bucket. Endpoint defaults to the account's R2 endpoint.
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string
}

// ObjectAPI is the part of *s3.Client the storage uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Storage implements ports.FileStorage.
type Storage struct {
	api    ObjectAPI
	bucket string
}

func NewStorage(api ObjectAPI, bucket string) *Storage {
	return &Storage{api: api, bucket: bucket}
}

// NewClient builds an S3 client for R2 with static credentials.
func NewClient(cfg Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, errs.NewValueIsRequiredError("R2_BUCKET")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errs.NewValueIsRequiredError("R2_ACCESS_KEY_ID/R2_SECRET_ACCESS_KEY")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		if cfg.AccountID == "" {
			return nil, errs.NewValueIsRequiredError("R2_ACCOUNT_ID")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	return s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}), nil
}

func (s *Storage) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errs.NewObjectNotFoundErrorWithCause("file", key, err)
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	if len(body) > MaxObjectBytes {
		return nil, errs.NewValueIsOutOfRangeError("source", len(body), 1, MaxObjectBytes)
	}
	return body, nil
}

func (s *Storage) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
