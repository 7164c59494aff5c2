// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/arianshop/backend/internal/config"
	"github.com/google/uuid"
)

// Service stores uploaded images on local disk and hands back the public
// URL recorded on the owning record (product image, avatar, delivery
// evidence).
type Service struct {
	config *config.Config
}

// NewService creates a new upload service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// StoreImage validates and persists one uploaded image under the given
// category directory and returns its public URL. The caller records the URL
// only after a successful store; any failure here leaves nothing behind.
func (s *Service) StoreImage(fileHeader *multipart.FileHeader, category string) (string, error) {
	if err := s.validateImageFile(fileHeader); err != nil {
		return "", err
	}

	if category == "" {
		category = "general"
	}

	filename := s.generateUniqueFilename(fileHeader.Filename)
	relativePath := filepath.Join(category, filename)
	fullPath := filepath.Join(s.config.External.Storage.LocalPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.fileURL(relativePath), nil
}

// StoreImages persists up to max images, stopping at the first failure and
// removing nothing already stored (product images are independent files).
func (s *Service) StoreImages(fileHeaders []*multipart.FileHeader, category string, max int) ([]string, error) {
	if len(fileHeaders) > max {
		fileHeaders = fileHeaders[:max]
	}

	urls := make([]string, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		url, err := s.StoreImage(fh, category)
		if err != nil {
			return nil, fmt.Errorf("failed to store image %s: %w", fh.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Service) validateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > s.config.Upload.MaxSize {
		return fmt.Errorf("file %s exceeds the maximum size of %d bytes", fileHeader.Filename, s.config.Upload.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type .%s is not allowed", ext)
}

func (s *Service) generateUniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}

func (s *Service) fileURL(relativePath string) string {
	urlPath := filepath.ToSlash(relativePath)
	if s.config.External.Storage.CDNBaseURL != "" {
		return s.config.External.Storage.CDNBaseURL + "/" + urlPath
	}
	return s.config.External.Storage.PublicPath + "/" + urlPath
}
