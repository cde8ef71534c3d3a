package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/logger"
)

type exerciseStatsServiceMock struct {
	startErr  error
	endReq    dto.EndExerciseRequest
	endErr    error
	actor     string
	historyID int64
	statsID   int64
	athleteID int64
}

func (m *exerciseStatsServiceMock) Today(ctx context.Context, athleteID int64) (*dto.TodayView, error) {
	m.athleteID = athleteID
	return &dto.TodayView{AthleteID: athleteID, Date: "2024-05-15", Weekday: "WEDNESDAY", Items: []dto.TodayItem{}}, nil
}

func (m *exerciseStatsServiceMock) Start(ctx context.Context, req dto.StartExerciseRequest, actor string) (*dto.ExecutionResult, error) {
	m.actor = actor
	if m.startErr != nil {
		return nil, m.startErr
	}
	return &dto.ExecutionResult{History: models.ExerciseHistory{ID: 1, Status: models.StatusInProgress}}, nil
}

func (m *exerciseStatsServiceMock) UpdateProgress(ctx context.Context, statsID int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error) {
	m.statsID = statsID
	return &dto.ExecutionResult{Stats: models.ExerciseStats{ID: statsID}}, nil
}

func (m *exerciseStatsServiceMock) UpdateHistoryProgress(ctx context.Context, historyID int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error) {
	m.historyID = historyID
	return &dto.ExecutionResult{History: models.ExerciseHistory{ID: historyID, Status: models.StatusInProgress}}, nil
}

func (m *exerciseStatsServiceMock) End(ctx context.Context, historyID int64, req dto.EndExerciseRequest, actor string) (*dto.ExecutionResult, error) {
	m.endReq, m.historyID = req, historyID
	if m.endErr != nil {
		return nil, m.endErr
	}
	return &dto.ExecutionResult{History: models.ExerciseHistory{ID: historyID, Status: models.StatusCompleted}, Complete: true}, nil
}

func (m *exerciseStatsServiceMock) History(ctx context.Context, routineExerciseID int64) ([]models.ExerciseHistory, error) {
	return []models.ExerciseHistory{}, nil
}

func (m *exerciseStatsServiceMock) Stats(ctx context.Context, historyID int64) (*models.ExerciseStats, error) {
	return &models.ExerciseStats{ID: historyID}, nil
}

func (m *exerciseStatsServiceMock) DeleteHistory(ctx context.Context, id int64, actor string) error {
	return nil
}

func TestExerciseStatsHandlerStartConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &exerciseStatsServiceMock{startErr: appErrors.ErrAlreadyInProgress}
	handler := NewExerciseStatsHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/exercise-stats/start", bytes.NewReader([]byte(`{"id_routine_has_exercise":4}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(logger.ActorKey, "athlete.joe")

	handler.Start(c)
	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "ALREADY_IN_PROGRESS", env.Error.Code)
	assert.Equal(t, "Exercise already in progress", env.Error.Message)
	assert.Equal(t, "athlete.joe", svc.actor)
}

func TestExerciseStatsHandlerStartCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExerciseStatsHandler(&exerciseStatsServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/exercise-stats/start", bytes.NewReader([]byte(`{"id_routine_has_exercise":4}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Start(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestExerciseStatsHandlerEndBindsConfirmation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &exerciseStatsServiceMock{}
	handler := NewExerciseStatsHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/exercise-stats/history/8/end", bytes.NewReader([]byte(`{"concluded_sets":2,"confirm_incomplete":true}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "8"}}

	handler.End(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), svc.historyID)
	assert.True(t, svc.endReq.ConfirmIncomplete)
	require.NotNil(t, svc.endReq.ConcludedSets)
	assert.Equal(t, 2, *svc.endReq.ConcludedSets)
}

func TestExerciseStatsHandlerEndNeedsConfirmation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExerciseStatsHandler(&exerciseStatsServiceMock{endErr: appErrors.ErrIncompleteConfirmation})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/exercise-stats/history/8/end", bytes.NewReader([]byte(`{"concluded_goal":3}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "8"}}

	handler.End(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INCOMPLETE_CONFIRMATION_REQUIRED", decodeEnvelope(t, w).Error.Code)
}

func TestExerciseStatsHandlerProgressInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExerciseStatsHandler(&exerciseStatsServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/exercise-stats/history/0/progress", bytes.NewReader([]byte(`{"concluded_sets":1}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	handler.Progress(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExerciseStatsHandlerToday(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExerciseStatsHandler(&exerciseStatsServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/exercise-stats/athlete/3/today", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Today(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestExerciseStatsHandlerProgressRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &exerciseStatsServiceMock{}
	handler := NewExerciseStatsHandler(svc)
	r := gin.New()
	stats := r.Group("/exercise-stats")
	stats.GET("/today/:id", handler.Today)
	stats.POST("/start", handler.Start)
	stats.PATCH("/:id/progress", handler.Progress)
	stats.PATCH("/history/:id/progress", handler.HistoryProgress)
	stats.PATCH("/history/:id/end", handler.End)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/exercise-stats/21/progress", bytes.NewReader([]byte(`{"concluded_sets":2}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(21), svc.statsID)
	assert.Zero(t, svc.historyID)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPatch, "/exercise-stats/history/31/progress", bytes.NewReader([]byte(`{"concluded_sets":2}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(31), svc.historyID)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/exercise-stats/today/3", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.athleteID)
}
