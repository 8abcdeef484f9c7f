package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ImageStore persists uploaded catalog images and returns their public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (string, error)
}

// CloudinaryStore uploads into a single Cloudinary folder.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryStore {
	return &CloudinaryStore{cld: cld, folder: folder}
}

func (s *CloudinaryStore) UploadImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	params := uploader.UploadParams{
		Folder: s.folder,
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to upload %s: %w", filename, err)
	}
	if result.SecureURL == "" {
		return "", errors.New("CloudinaryStore: no URL returned")
	}
	zap.L().Info("Image uploaded", zap.String("publicId", result.PublicID), zap.String("file", filename))
	return result.SecureURL, nil
}
