package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type CloudinaryStore struct {
	api    CloudinaryAPI
	folder string
}

func NewCloudinaryStore(api CloudinaryAPI, folder string) *CloudinaryStore {
	return &CloudinaryStore{api: api, folder: folder}
}

func (s *CloudinaryStore) Name() string {
	return "cloudinary"
}

// publicID drops the extension, cloudinary appends its own.
func (s *CloudinaryStore) publicID(key string) string {
	return s.folder + "/" + strings.TrimSuffix(key, path.Ext(key))
}

func (s *CloudinaryStore) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	resp, err := s.api.Upload(ctx, body, uploader.UploadParams{
		PublicID: s.publicID(key),
	})
	if err != nil {
		log.Printf("[cloudinary] Upload failed for %s: %s\n", key, err.Error())
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	resp, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: s.publicID(key)})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return nil
}
