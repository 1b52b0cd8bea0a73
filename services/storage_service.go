package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StorageService persists uploaded files on local disk under the configured
// uploads directory. Scripts live under scripts/, storyboard images under
// storyboard/; both are served back as static paths under /uploads.
type StorageService struct {
	baseDir string
}

const (
	ScriptsDir    = "scripts"
	StoryboardDir = "storyboard"

	// URLPrefix is the public static route the saved paths are served from.
	URLPrefix = "/uploads"
)

func NewStorageService(baseDir string) (*StorageService, error) {
	for _, sub := range []string{ScriptsDir, StoryboardDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", sub, err)
		}
	}

	return &StorageService{baseDir: baseDir}, nil
}

// BaseDir returns the root of the uploads tree.
func (s *StorageService) BaseDir() string {
	return s.baseDir
}

// SaveScript writes an uploaded script and returns its public URL path.
func (s *StorageService) SaveScript(file multipart.File, originalName string) (string, error) {
	return s.save(file, ScriptsDir, originalName)
}

// SaveStoryboardImage writes an uploaded frame image and returns its public
// URL path.
func (s *StorageService) SaveStoryboardImage(file multipart.File, originalName string) (string, error) {
	return s.save(file, StoryboardDir, originalName)
}

func (s *StorageService) save(file multipart.File, subdir, originalName string) (string, error) {
	name := storedName(originalName)

	dst, err := os.Create(filepath.Join(s.baseDir, subdir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path.Join(URLPrefix, subdir, name), nil
}

// Remove deletes the file behind a stored URL path. Unknown or already-gone
// paths are not an error; callers treat cleanup as best effort.
func (s *StorageService) Remove(urlPath string) error {
	local, ok := s.LocalPath(urlPath)
	if !ok {
		return nil
	}

	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// LocalPath maps a stored URL path back to a location on disk. Paths outside
// the uploads tree are rejected.
func (s *StorageService) LocalPath(urlPath string) (string, bool) {
	rel, ok := strings.CutPrefix(urlPath, URLPrefix+"/")
	if !ok {
		return "", false
	}

	rel = filepath.FromSlash(path.Clean(rel))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}

	return filepath.Join(s.baseDir, rel), true
}

// storedName builds a collision-free name keeping the original extension.
func storedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), primitive.NewObjectID().Hex(), ext)
}
