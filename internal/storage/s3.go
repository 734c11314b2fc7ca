package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/credsure/admin-api/internal/config"
)

// ObjectStore stores car images in a remote bucket.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a public URL produced by Upload back to its object
	// key. Returns false for URLs hosted elsewhere.
	KeyFromURL(url string) (string, bool)
}

// S3Store is the S3-backed implementation.
type S3Store struct {
	bucket string
	region string
	svc    *s3.S3
}

// NewS3Store creates an S3 client from config.
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return &S3Store{
		bucket: cfg.Bucket,
		region: cfg.Region,
		svc:    s3.New(sess),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error) {
	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete removes an object. Callers treat failures as best effort.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL extracts the object key from a public URL produced by Upload.
// Returns false for URLs outside the bucket.
func (s *S3Store) KeyFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
