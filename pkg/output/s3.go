package output

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Config holds the connection settings for S3-compatible storage
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty uses AWS
	Region    string
	Bucket    string
	ACL       string // Optional canned ACL, e.g. "public-read"
}

// S3Uploader stores rendered files in a bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	acl    string
}

// NewS3Uploader creates an uploader with static credentials
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, cfg.ACL), nil
}

// NewS3UploaderWithClient wraps an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, acl string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, acl: acl}
}

// Upload stores data under key with the given content type
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		input.ACL = aws.String(u.acl)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to s3://%s (%d bytes)", key, u.bucket, len(data))
	return nil
}
