package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hoteldesk/backend/internal/infrastructure/printing"
)

// S3Options configures the S3 document store
type S3Options struct {
	Bucket    string
	Region    string
	KeyPrefix string
	// Endpoint overrides the AWS endpoint, for MinIO and other compatible stores
	Endpoint string
	// AccessKeyID and SecretAccessKey use static credentials when both are set,
	// otherwise the default credential chain applies
	AccessKeyID     string
	SecretAccessKey string
	// UsePathStyle is required by most S3-compatible stores
	UsePathStyle bool
}

// S3Storage stores invoice PDFs in an S3 bucket
type S3Storage struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

var _ printing.PDFStorage = (*S3Storage)(nil)

// NewS3Storage creates an S3-backed document store
func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3 storage: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &S3Storage{
		client:    client,
		bucket:    opts.Bucket,
		keyPrefix: opts.KeyPrefix,
	}, nil
}

func (s *S3Storage) Store(ctx context.Context, req *printing.StoreRequest) (*printing.StoreResult, error) {
	if len(req.PDFData) == 0 {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	key := printing.StorageKey(req.PropertyID, req.InvoiceID, req.GeneratedAt)
	objectKey := s.objectKey(key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(req.PDFData),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to upload PDF", err)
	}

	return &printing.StoreResult{
		Key:  key,
		URL:  fmt.Sprintf("s3://%s/%s", s.bucket, objectKey),
		Size: int64(len(req.PDFData)),
	}, nil
}

func (s *S3Storage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to download PDF", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to read PDF body", err)
	}
	return data, nil
}

func (s *S3Storage) objectKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + "/" + key
}
