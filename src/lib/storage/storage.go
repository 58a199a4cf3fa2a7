// Package storage persists uploaded media. Keys are slash-separated
// relative paths such as "media/2025/06/<uuid>.jpg".
package storage

import (
	"context"
	"cycleparadise/src/config"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	awslib "cycleparadise/src/lib/aws"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
)

type Store interface {
	Name() string
	// Save writes body under key and returns the public URL.
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New picks S3 when a bucket is configured, then Cloudinary, then the
// local upload directory.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch {
	case cfg.S3AssetsBucket != "":
		awsCfg, err := awslib.LoadConfig(ctx, cfg.AWSIAMRoleARN)
		if err != nil {
			return nil, err
		}
		return awslib.NewS3Bucket(awsCfg, cfg.S3AssetsBucket, cfg.AssetsBaseURL), nil
	case cfg.CloudinaryURL != "":
		cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			log.Printf("Could not initialize cloudinary: %s\n", err.Error())
			return nil, err
		}
		return NewCloudinaryStore(&cld.Upload, "cycleparadise"), nil
	default:
		return NewLocalStore(cfg.UploadDir, cfg.UploadURL)
	}
}

// NewKey builds a unique key that keeps the original file extension.
func NewKey(filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("media/%s/%s%s", now.UTC().Format("2006/01"), uuid.NewString(), ext)
}
