package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultURLExpiry is how long a presigned download link stays valid.
const DefaultURLExpiry = 15 * time.Minute

// S3Config configures an S3-compatible bucket (AWS S3, Cloudflare R2, MinIO).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional; set for R2 or MinIO
	AccessKey string // optional; the default credential chain is used when empty
	SecretKey string
	URLExpiry time.Duration
}

type putAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads exports with PutObject and returns presigned GET URLs.
type S3Store struct {
	bucket  string
	expiry  time.Duration
	client  putAPI
	presign presignFunc
}

type presignFunc func(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)

// NewS3Store builds an S3 client from cfg.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimRight(cfg.Endpoint, "/"))
			o.UsePathStyle = true
		}
	})
	presigner := s3.NewPresignClient(client)

	store := newS3Store(cfg.Bucket, cfg.URLExpiry, client)
	store.presign = func(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
		req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(expiry))
		if err != nil {
			return "", err
		}
		return req.URL, nil
	}
	return store, nil
}

func newS3Store(bucket string, expiry time.Duration, client putAPI) *S3Store {
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}
	return &S3Store{bucket: bucket, expiry: expiry, client: client}
}

// Put implements ExportStore.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", &UploadError{Key: key, Cause: err}
	}

	url, err := s.presign(ctx, s.bucket, key, s.expiry)
	if err != nil {
		return "", &UploadError{Key: key, Cause: fmt.Errorf("presign: %w", err)}
	}
	log.Printf("[STORAGE] Stored %s (%d bytes)", key, len(data))
	return url, nil
}
