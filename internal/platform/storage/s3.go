package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"giggles/internal/platform/config"
)

// S3Store uploads public-read objects to one S3 (or S3-compatible) bucket.
type S3Store struct {
	bucket    string
	publicURL string
	client    *s3.Client
	logger    *slog.Logger
}

func NewS3Store(ctx context.Context, cfg config.StorageConfig, bucket string, logger *slog.Logger) (*S3Store, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	// Without static keys the default chain (env, shared config, instance role) applies.
	if cfg.S3AccessKeyID != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if endpoint := strings.TrimSpace(cfg.S3Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3Store{
		bucket:    bucket,
		publicURL: publicBucketURL(cfg, bucket),
		client:    client,
		logger:    logger,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		s.logger.Error("s3 put object failed",
			"event", "storage_s3_put_failed",
			"module", "internal/platform/storage",
			"layer", "platform",
			"bucket", s.bucket,
			"key", key,
			"error", err.Error(),
		)
		return "", fmt.Errorf("put s3 object %s/%s: %w", s.bucket, key, err)
	}
	return s.publicURL + "/" + key, nil
}

func publicBucketURL(cfg config.StorageConfig, bucket string) string {
	if public := strings.TrimSuffix(strings.TrimSpace(cfg.S3PublicEndpoint), "/"); public != "" {
		return public + "/" + bucket
	}
	if endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.S3Endpoint), "/"); endpoint != "" && cfg.S3UsePathStyle {
		return endpoint + "/" + bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
}
