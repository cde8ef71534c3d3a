package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/storage"
)

type photoRepository interface {
	PhotoPath(ctx context.Context, owner models.PhotoOwner, id int64) (*string, error)
	SetPhotoPath(ctx context.Context, owner models.PhotoOwner, id int64, path string) (bool, error)
}

type videoRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Exercise, error)
	SetVideoPath(ctx context.Context, id int64, path *string) error
}

type mediaStore interface {
	Put(bucket storage.Bucket, originalName string, r io.Reader) (string, error)
	Open(bucket storage.Bucket, key string) (*os.File, error)
	Delete(bucket storage.Bucket, key string) error
}

type mediaSigner interface {
	Generate(bucket storage.Bucket, key string) (string, time.Time, error)
	Parse(token string) (storage.Bucket, string, error)
}

// MediaUpload carries an uploaded file.
type MediaUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// MediaDownload is an opened media object ready to stream.
type MediaDownload struct {
	File        *os.File
	Filename    string
	ContentType string
}

// SignedMediaURL grants temporary access to a media object.
type SignedMediaURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MediaService stores entity photos and exercise videos.
type MediaService struct {
	photos    photoRepository
	videos    videoRepository
	store     mediaStore
	signer    mediaSigner
	maxBytes  int64
	apiPrefix string
	logger    *zap.Logger
}

// NewMediaService constructs the media service.
func NewMediaService(photos photoRepository, videos videoRepository, store mediaStore, signer mediaSigner, maxBytes int64, apiPrefix string, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	return &MediaService{
		photos:    photos,
		videos:    videos,
		store:     store,
		signer:    signer,
		maxBytes:  maxBytes,
		apiPrefix: strings.TrimRight(apiPrefix, "/"),
		logger:    logger,
	}
}

// MaxUploadBytes is the upload size cap.
func (s *MediaService) MaxUploadBytes() int64 {
	return s.maxBytes
}

// UploadPhoto stores a photo and records it on the owning entity, replacing
// any previous photo.
func (s *MediaService) UploadPhoto(ctx context.Context, owner models.PhotoOwner, id int64, upload MediaUpload) (string, error) {
	if !owner.Valid() {
		return "", appErrors.Clone(appErrors.ErrNotFound, "unknown photo owner")
	}
	if err := s.checkUpload(storage.BucketPhotos, upload); err != nil {
		return "", err
	}
	previous, err := s.photos.PhotoPath(ctx, owner, id)
	if err != nil {
		return "", loadError(err, ownerEntity(owner))
	}

	key, err := s.store.Put(storage.BucketPhotos, upload.Filename, upload.Content)
	if err != nil {
		return "", internalError(err, "failed to store photo")
	}
	found, err := s.photos.SetPhotoPath(ctx, owner, id, key)
	if err != nil || !found {
		_ = s.store.Delete(storage.BucketPhotos, key)
		if err != nil {
			return "", internalError(err, "failed to record photo")
		}
		return "", appErrors.Clone(appErrors.ErrNotFound, ownerEntity(owner)+" not found")
	}
	if previous != nil && *previous != "" {
		if err := s.store.Delete(storage.BucketPhotos, *previous); err != nil {
			s.logger.Warn("failed to remove replaced photo", zap.String("key", *previous), zap.Error(err))
		}
	}
	return key, nil
}

// OpenPhoto opens the stored photo of an entity.
func (s *MediaService) OpenPhoto(ctx context.Context, owner models.PhotoOwner, id int64) (*MediaDownload, error) {
	key, err := s.photoKey(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.open(storage.BucketPhotos, key)
}

// UploadVideo stores an exercise video, replacing any previous one.
func (s *MediaService) UploadVideo(ctx context.Context, exerciseID int64, upload MediaUpload) (string, error) {
	if err := s.checkUpload(storage.BucketVideos, upload); err != nil {
		return "", err
	}
	exercise, err := s.videos.FindByID(ctx, exerciseID)
	if err != nil {
		return "", loadError(err, "exercise")
	}
	key, err := s.store.Put(storage.BucketVideos, upload.Filename, upload.Content)
	if err != nil {
		return "", internalError(err, "failed to store video")
	}
	if err := s.videos.SetVideoPath(ctx, exerciseID, &key); err != nil {
		_ = s.store.Delete(storage.BucketVideos, key)
		return "", internalError(err, "failed to record video")
	}
	if exercise.VideoPath != nil && *exercise.VideoPath != "" {
		if err := s.store.Delete(storage.BucketVideos, *exercise.VideoPath); err != nil {
			s.logger.Warn("failed to remove replaced video", zap.String("key", *exercise.VideoPath), zap.Error(err))
		}
	}
	return key, nil
}

// OpenVideo opens the stored video of an exercise.
func (s *MediaService) OpenVideo(ctx context.Context, exerciseID int64) (*MediaDownload, error) {
	exercise, err := s.videos.FindByID(ctx, exerciseID)
	if err != nil {
		return nil, loadError(err, "exercise")
	}
	if exercise.VideoPath == nil || *exercise.VideoPath == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "video not found")
	}
	return s.open(storage.BucketVideos, *exercise.VideoPath)
}

// DeleteVideo removes an exercise video.
func (s *MediaService) DeleteVideo(ctx context.Context, exerciseID int64) error {
	exercise, err := s.videos.FindByID(ctx, exerciseID)
	if err != nil {
		return loadError(err, "exercise")
	}
	if exercise.VideoPath == nil {
		return nil
	}
	if err := s.videos.SetVideoPath(ctx, exerciseID, nil); err != nil {
		return internalError(err, "failed to clear video")
	}
	if err := s.store.Delete(storage.BucketVideos, *exercise.VideoPath); err != nil {
		s.logger.Warn("failed to remove video", zap.String("key", *exercise.VideoPath), zap.Error(err))
	}
	return nil
}

// PhotoURL signs a temporary download URL for an entity photo.
func (s *MediaService) PhotoURL(ctx context.Context, owner models.PhotoOwner, id int64) (*SignedMediaURL, error) {
	key, err := s.photoKey(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "media signer unavailable")
	}
	token, expiresAt, err := s.signer.Generate(storage.BucketPhotos, key)
	if err != nil {
		return nil, internalError(err, "failed to sign media url")
	}
	return &SignedMediaURL{URL: fmt.Sprintf("%s/files/%s", s.apiPrefix, token), ExpiresAt: expiresAt}, nil
}

// OpenSigned validates a signed token and opens the object it names.
func (s *MediaService) OpenSigned(token string) (*MediaDownload, error) {
	if s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "media signer unavailable")
	}
	bucket, key, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired token")
	}
	return s.open(bucket, key)
}

func (s *MediaService) photoKey(ctx context.Context, owner models.PhotoOwner, id int64) (string, error) {
	if !owner.Valid() {
		return "", appErrors.Clone(appErrors.ErrNotFound, "unknown photo owner")
	}
	key, err := s.photos.PhotoPath(ctx, owner, id)
	if err != nil {
		return "", loadError(err, ownerEntity(owner))
	}
	if key == nil || *key == "" {
		return "", appErrors.Clone(appErrors.ErrNotFound, "photo not found")
	}
	return *key, nil
}

func (s *MediaService) checkUpload(bucket storage.Bucket, upload MediaUpload) error {
	if upload.Content == nil || upload.Size <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if upload.Size > s.maxBytes {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.maxBytes))
	}
	if !storage.Accepts(bucket, filepath.Ext(upload.Filename)) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported %s file type", strings.TrimSuffix(string(bucket), "s")))
	}
	return nil
}

func (s *MediaService) open(bucket storage.Bucket, key string) (*MediaDownload, error) {
	file, err := s.store.Open(bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "file not found")
		}
		return nil, internalError(err, "failed to open media file")
	}
	return &MediaDownload{File: file, Filename: filepath.Base(key), ContentType: storage.ContentType(key)}, nil
}

// ownerEntity turns a table name into the entity name used in messages.
func ownerEntity(owner models.PhotoOwner) string {
	name := strings.TrimSuffix(string(owner), "s")
	if owner == models.PhotoOwnerCoach {
		name = "coach"
	}
	return name
}
