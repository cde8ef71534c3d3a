package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/service"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

type mediaService interface {
	MaxUploadBytes() int64
	UploadPhoto(ctx context.Context, owner models.PhotoOwner, id int64, upload service.MediaUpload) (string, error)
	OpenPhoto(ctx context.Context, owner models.PhotoOwner, id int64) (*service.MediaDownload, error)
	PhotoURL(ctx context.Context, owner models.PhotoOwner, id int64) (*service.SignedMediaURL, error)
	UploadVideo(ctx context.Context, exerciseID int64, upload service.MediaUpload) (string, error)
	OpenVideo(ctx context.Context, exerciseID int64) (*service.MediaDownload, error)
	DeleteVideo(ctx context.Context, exerciseID int64) error
	OpenSigned(token string) (*service.MediaDownload, error)
}

// MediaHandler serves entity photos, exercise videos and signed file links.
type MediaHandler struct {
	media mediaService
}

// NewMediaHandler constructs MediaHandler.
func NewMediaHandler(media mediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Photo godoc
// @Summary Stream an entity photo
// @Tags Media
// @Produce image/png
// @Produce image/jpeg
// @Param resource path string true "teams, athletes, coaches, sports or exercises"
// @Param id path int true "Entity ID"
// @Success 200 {file} file
// @Router /{resource}/{id}/photo [get]
func (h *MediaHandler) Photo(owner models.PhotoOwner) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		download, err := h.media.OpenPhoto(c.Request.Context(), owner, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		stream(c, download)
	}
}

// UploadPhoto godoc
// @Summary Upload an entity photo
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param resource path string true "teams, athletes, coaches, sports or exercises"
// @Param id path int true "Entity ID"
// @Param file formData file true "Image file"
// @Success 200 {object} response.Envelope
// @Router /{resource}/{id}/photo [put]
func (h *MediaHandler) UploadPhoto(owner models.PhotoOwner) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		h.upload(c, func(ctx context.Context, upload service.MediaUpload) (string, error) {
			return h.media.UploadPhoto(ctx, owner, id, upload)
		}, "photo_path")
	}
}

// PhotoURL godoc
// @Summary Signed temporary link to an entity photo
// @Tags Media
// @Produce json
// @Param resource path string true "teams, athletes, coaches, sports or exercises"
// @Param id path int true "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /{resource}/{id}/photo-url [get]
func (h *MediaHandler) PhotoURL(owner models.PhotoOwner) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		signed, err := h.media.PhotoURL(c.Request.Context(), owner, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, signed, nil)
	}
}

// Video godoc
// @Summary Stream an exercise video
// @Tags Media
// @Produce video/mp4
// @Param id path int true "Exercise ID"
// @Success 200 {file} file
// @Router /exercises/{id}/video [get]
func (h *MediaHandler) Video(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	download, err := h.media.OpenVideo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, download)
}

// UploadVideo godoc
// @Summary Upload an exercise video
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Exercise ID"
// @Param file formData file true "mp4, webm or ogg file"
// @Success 200 {object} response.Envelope
// @Router /exercises/{id}/video [put]
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.upload(c, func(ctx context.Context, upload service.MediaUpload) (string, error) {
		return h.media.UploadVideo(ctx, id, upload)
	}, "video_path")
}

// DeleteVideo godoc
// @Summary Remove an exercise video
// @Tags Media
// @Param id path int true "Exercise ID"
// @Success 204
// @Router /exercises/{id}/video [delete]
func (h *MediaHandler) DeleteVideo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.media.DeleteVideo(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// File godoc
// @Summary Download a file through a signed token
// @Tags Media
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /files/{token} [get]
func (h *MediaHandler) File(c *gin.Context) {
	download, err := h.media.OpenSigned(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, download)
}

func (h *MediaHandler) upload(c *gin.Context, store func(context.Context, service.MediaUpload) (string, error), field string) {
	limit := h.media.MaxUploadBytes()
	// multipart framing adds a little on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
		return
	}
	defer file.Close()

	key, err := store(c.Request.Context(), service.MediaUpload{Filename: header.Filename, Size: header.Size, Content: file})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{field: key}, nil)
}

func stream(c *gin.Context, download *service.MediaDownload) {
	defer download.File.Close()
	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read media file"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType, download.File, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", download.Filename),
		"Cache-Control":       "no-store",
	})
}
