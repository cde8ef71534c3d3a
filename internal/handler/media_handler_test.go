package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/service"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type mediaServiceMock struct {
	dir      string
	owner    models.PhotoOwner
	uploaded []byte
	filename string
}

func (m *mediaServiceMock) MaxUploadBytes() int64 { return 1 << 20 }

func (m *mediaServiceMock) UploadPhoto(ctx context.Context, owner models.PhotoOwner, id int64, upload service.MediaUpload) (string, error) {
	m.owner, m.filename = owner, upload.Filename
	m.uploaded, _ = io.ReadAll(upload.Content)
	return "photos/abc.png", nil
}

func (m *mediaServiceMock) OpenPhoto(ctx context.Context, owner models.PhotoOwner, id int64) (*service.MediaDownload, error) {
	m.owner = owner
	return m.download("abc.png", "image/png", []byte("png-bytes"))
}

func (m *mediaServiceMock) PhotoURL(ctx context.Context, owner models.PhotoOwner, id int64) (*service.SignedMediaURL, error) {
	return &service.SignedMediaURL{URL: "/api/files/token", ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (m *mediaServiceMock) UploadVideo(ctx context.Context, exerciseID int64, upload service.MediaUpload) (string, error) {
	return "", appErrors.Clone(appErrors.ErrValidation, "unsupported video file type")
}

func (m *mediaServiceMock) OpenVideo(ctx context.Context, exerciseID int64) (*service.MediaDownload, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "video not found")
}

func (m *mediaServiceMock) DeleteVideo(ctx context.Context, exerciseID int64) error {
	return nil
}

func (m *mediaServiceMock) OpenSigned(token string) (*service.MediaDownload, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired token")
	}
	return m.download("abc.png", "image/png", []byte("png-bytes"))
}

func (m *mediaServiceMock) download(name, contentType string, body []byte) (*service.MediaDownload, error) {
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &service.MediaDownload{File: file, Filename: name, ContentType: contentType}, nil
}

func multipartRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	req, _ := http.NewRequest(http.MethodPut, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestMediaHandlerUploadPhoto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &mediaServiceMock{dir: t.TempDir()}
	handler := NewMediaHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/athletes/2/photo", "face.png", []byte("img"))
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	handler.UploadPhoto(models.PhotoOwnerAthlete)(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PhotoOwnerAthlete, svc.owner)
	assert.Equal(t, "face.png", svc.filename)
	assert.Equal(t, []byte("img"), svc.uploaded)
	assert.Contains(t, w.Body.String(), "photos/abc.png")
}

func TestMediaHandlerUploadWithoutFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMediaHandler(&mediaServiceMock{dir: t.TempDir()})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/teams/2/photo", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	handler.UploadPhoto(models.PhotoOwnerTeam)(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaHandlerStreamsPhoto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &mediaServiceMock{dir: t.TempDir()}
	handler := NewMediaHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/sports/1/photo", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Photo(models.PhotoOwnerSport)(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PhotoOwnerSport, svc.owner)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestMediaHandlerSignedFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMediaHandler(&mediaServiceMock{dir: t.TempDir()})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/files/bad", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	handler.File(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodGet, "/files/good", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "good"}}
	handler.File(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMediaHandlerVideoNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMediaHandler(&mediaServiceMock{dir: t.TempDir()})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/exercises/1/video", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Video(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
