package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("object storage is not configured")

// PresignedRequest is a time-limited URL the client uses directly against the bucket.
type PresignedRequest struct {
	URL       string
	Method    string
	Path      string
	ExpiresAt time.Time
}

// Presigner issues signed object URLs.
type Presigner interface {
	PresignPut(ctx context.Context, loc ObjectLocation, contentType string) (PresignedRequest, error)
	PresignGet(ctx context.Context, loc ObjectLocation) (PresignedRequest, error)
	Bucket() string
}

// S3Config configures the S3 presigner.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	TTL             time.Duration
}

// S3Presigner signs PUT and GET object URLs with SigV4.
type S3Presigner struct {
	client *s3.PresignClient
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

// NewS3Presigner loads the AWS configuration and builds a presigner. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain applies.
func NewS3Presigner(ctx context.Context, cfg S3Config) (*S3Presigner, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrDisabled
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		client: s3.NewPresignClient(client, s3.WithPresignExpires(cfg.TTL)),
		bucket: cfg.Bucket,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

func (p *S3Presigner) Bucket() string { return p.bucket }

func (p *S3Presigner) PresignPut(ctx context.Context, loc ObjectLocation, contentType string) (PresignedRequest, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.FullPath),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return PresignedRequest{}, fmt.Errorf("presign put %s: %w", loc.FullPath, err)
	}
	return PresignedRequest{URL: req.URL, Method: req.Method, Path: loc.FullPath, ExpiresAt: p.now().Add(p.ttl)}, nil
}

func (p *S3Presigner) PresignGet(ctx context.Context, loc ObjectLocation) (PresignedRequest, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.FullPath),
	})
	if err != nil {
		return PresignedRequest{}, fmt.Errorf("presign get %s: %w", loc.FullPath, err)
	}
	return PresignedRequest{URL: req.URL, Method: req.Method, Path: loc.FullPath, ExpiresAt: p.now().Add(p.ttl)}, nil
}
