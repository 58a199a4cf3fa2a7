package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Bucket stores media objects. Objects are public through baseURL,
// which defaults to the bucket's virtual-hosted endpoint.
type S3Bucket struct {
	api     S3API
	bucket  string
	baseURL string
}

func NewS3Bucket(cfg aws.Config, bucket, baseURL string) *S3Bucket {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}
	return NewS3BucketWithClient(s3.NewFromConfig(cfg), bucket, baseURL)
}

func NewS3BucketWithClient(api S3API, bucket, baseURL string) *S3Bucket {
	return &S3Bucket{api: api, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (b *S3Bucket) Name() string {
	return "s3"
}

func (b *S3Bucket) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[S3] Could not put object %s: %s\n", key, err.Error())
		return "", err
	}
	log.Printf("[S3] Added object '%s' to bucket '%s'\n", key, b.bucket)
	return b.baseURL + "/" + key, nil
}

// Delete treats a missing key as already deleted.
func (b *S3Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}
	return err
}
