package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Bucket names a top-level media namespace.
type Bucket string

const (
	BucketPhotos Bucket = "photos"
	BucketVideos Bucket = "videos"
)

// ErrObjectNotFound is returned when a key does not exist in its bucket.
var ErrObjectNotFound = errors.New("object not found")

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
}

var allowedExtensions = map[Bucket]map[string]struct{}{
	BucketPhotos: {".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}},
	BucketVideos: {".mp4": {}, ".webm": {}, ".ogg": {}},
}

// MediaStore persists photos and videos on disk, one directory per bucket.
type MediaStore struct {
	baseDir string
}

// NewMediaStore ensures every bucket directory exists and returns a handle.
func NewMediaStore(baseDir string) (*MediaStore, error) {
	if baseDir == "" {
		baseDir = "./media"
	}
	for _, bucket := range []Bucket{BucketPhotos, BucketVideos} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(bucket)), 0o755); err != nil {
			return nil, fmt.Errorf("create %s bucket: %w", bucket, err)
		}
	}
	return &MediaStore{baseDir: baseDir}, nil
}

// Put stores r under a fresh uuid key that keeps the original file extension.
func (s *MediaStore) Put(bucket Bucket, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !Accepts(bucket, ext) {
		return "", fmt.Errorf("unsupported %s extension %q", bucket, ext)
	}
	key := uuid.NewString() + ext
	file, err := os.Create(s.resolve(bucket, key))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write media stream: %w", err)
	}
	return key, nil
}

// Open returns a read-only handle for the stored object.
func (s *MediaStore) Open(bucket Bucket, key string) (*os.File, error) {
	file, err := os.Open(s.resolve(bucket, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open media file: %w", err)
	}
	return file, nil
}

// Delete removes a stored object if present.
func (s *MediaStore) Delete(bucket Bucket, key string) error {
	if err := os.Remove(s.resolve(bucket, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// Accepts reports whether ext may be stored in bucket.
func Accepts(bucket Bucket, ext string) bool {
	_, ok := allowedExtensions[bucket][strings.ToLower(ext)]
	return ok
}

// ContentType derives a MIME type from the key extension.
func ContentType(key string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (s *MediaStore) resolve(bucket Bucket, key string) string {
	return filepath.Join(s.baseDir, string(bucket), filepath.Base(key))
}
