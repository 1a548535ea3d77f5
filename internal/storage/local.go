// Package storage stores uploaded images on the local filesystem. Files are
// renamed to UUIDs so user-supplied names never touch the disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tripwise/service-travel/internal/domain"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageStore saves uploaded images under a base directory and serves them by
// relative URL path.
type ImageStore struct {
	baseDir string
}

// NewImageStore creates the base directory if needed.
func NewImageStore(baseDir string) (*ImageStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{baseDir: baseDir}, nil
}

// BaseDir returns the directory files are stored under, for static serving.
func (s *ImageStore) BaseDir() string {
	return s.baseDir
}

// Save validates and writes an uploaded image, returning the URL path it is
// served from. Size is the declared length; reads past the 5 MB cap fail
// even if the declared size lies.
func (s *ImageStore) Save(ownerID uuid.UUID, filename string, size int64, r io.Reader) (string, error) {
	if size > maxImageSize {
		return "", domain.NewValidationError("file too large, maximum size is 5MB")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", domain.NewValidationError("invalid file type, allowed: jpg, jpeg, png, webp")
	}

	name := fmt.Sprintf("%s_%s%s", ownerID, uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(r, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	if written > maxImageSize {
		_ = os.Remove(dst.Name())
		return "", domain.NewValidationError("file too large, maximum size is 5MB")
	}

	return "/uploads/" + name, nil
}

// Remove deletes a stored image given the URL path Save returned. Unknown
// paths are ignored.
func (s *ImageStore) Remove(urlPath string) error {
	name := filepath.Base(urlPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}
