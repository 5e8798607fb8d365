package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/pkg/id"
)

// UploadResult identifies a stored object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Service interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader, contentType string) (*UploadResult, error)
	UploadBase64(ctx context.Context, folder, filename, b64Data string) (*UploadResult, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	store       objectStore
	presignTTL  time.Duration
	allowedExts map[string]bool
}

func NewService(store objectStore, presignTTL time.Duration) Service {
	return &service{
		store:      store,
		presignTTL: presignTTL,
		allowedExts: map[string]bool{
			".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
		},
	}
}

func (s *service) Upload(ctx context.Context, folder, filename string, r io.Reader, contentType string) (*UploadResult, error) {
	key, err := s.objectKey(folder, filename)
	if err != nil {
		return nil, err
	}
	url, err := s.store.Upload(ctx, key, r, contentType)
	if err != nil {
		return nil, err
	}
	return &UploadResult{Key: key, URL: url}, nil
}

func (s *service) UploadBase64(ctx context.Context, folder, filename, b64Data string) (*UploadResult, error) {
	key, err := s.objectKey(folder, filename)
	if err != nil {
		return nil, err
	}
	url, err := s.store.UploadBase64(ctx, key, b64Data)
	if err != nil {
		return nil, err
	}
	return &UploadResult{Key: key, URL: url}, nil
}

func (s *service) DownloadURL(ctx context.Context, key string) (string, error) {
	return s.store.PresignedURL(ctx, key, s.presignTTL)
}

// objectKey builds a collision-free key; the client filename only
// contributes its extension.
func (s *service) objectKey(folder, filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !s.allowedExts[ext] {
		return "", fmt.Errorf("unsupported file type %q: %w", ext, domain.ErrBadRequest)
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s%s", folder, id.New(), ext), nil
}
