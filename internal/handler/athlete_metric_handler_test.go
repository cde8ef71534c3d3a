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
	"github.com/noah-isme/teamfit-api/internal/middleware"
	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/export"
)

type athleteMetricServiceMock struct {
	filter    models.AthleteMetricFilter
	boardHit  bool
	adjusted  dto.AdjustMetricValueRequest
	direction string
	editErr   error
}

func (m *athleteMetricServiceMock) List(ctx context.Context, filter models.AthleteMetricFilter) ([]models.AthleteMetric, error) {
	m.filter = filter
	return []models.AthleteMetric{{ID: 10, AthleteID: filter.AthleteID, MetricID: 1}}, nil
}

func (m *athleteMetricServiceMock) Get(ctx context.Context, id int64) (*models.AthleteMetric, error) {
	return &models.AthleteMetric{ID: id}, nil
}

func (m *athleteMetricServiceMock) Assign(ctx context.Context, req dto.AssignMetricRequest, actor string) (*models.AthleteMetric, error) {
	return &models.AthleteMetric{ID: 1, MetricID: req.MetricID, AthleteID: req.AthleteID, Value: req.Value}, nil
}

func (m *athleteMetricServiceMock) Increment(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error) {
	m.adjusted, m.direction = req, "up"
	return &models.AthleteMetric{ID: id}, nil
}

func (m *athleteMetricServiceMock) Decrement(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error) {
	m.adjusted, m.direction = req, "down"
	return &models.AthleteMetric{ID: id}, nil
}

func (m *athleteMetricServiceMock) Edit(ctx context.Context, id int64, req dto.EditMetricValueRequest, actor string) (*models.AthleteMetric, error) {
	if m.editErr != nil {
		return nil, m.editErr
	}
	return &models.AthleteMetric{ID: id, Value: req.Value}, nil
}

func (m *athleteMetricServiceMock) Delete(ctx context.Context, id int64, actor string) error {
	return nil
}

func (m *athleteMetricServiceMock) Board(ctx context.Context, athleteID int64) (*dto.AthleteBoard, bool, error) {
	return &dto.AthleteBoard{AthleteID: athleteID, Entries: []dto.BoardEntry{}}, m.boardHit, nil
}

type boardExporterMock struct {
	format string
}

func (m *boardExporterMock) AthleteBoard(ctx context.Context, athleteID int64, rawFormat string) (*export.Report, error) {
	m.format = rawFormat
	if rawFormat == "xlsx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported format")
	}
	return &export.Report{Filename: "athlete-7-metrics.csv", ContentType: "text/csv", Body: []byte("Metric,Kind,Formula,Value\n")}, nil
}

func TestAthleteMetricHandlerBoardReportsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAthleteMetricHandler(&athleteMetricServiceMock{boardHit: true}, &boardExporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/athletes/7/metrics", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.Board(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Equal(t, true, middleware.ExtractMeta(c)["cache_hit"])
}

func TestAthleteMetricHandlerIncrementWithoutBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &athleteMetricServiceMock{}
	handler := NewAthleteMetricHandler(svc, &boardExporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/athlete-metrics/3/increment", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Increment(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "up", svc.direction)
	assert.Nil(t, svc.adjusted.Step)
}

func TestAthleteMetricHandlerDecrementWithStep(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &athleteMetricServiceMock{}
	handler := NewAthleteMetricHandler(svc, &boardExporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/athlete-metrics/3/decrement", bytes.NewReader([]byte(`{"step":2.5}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Decrement(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "down", svc.direction)
	require.NotNil(t, svc.adjusted.Step)
	assert.Equal(t, 2.5, *svc.adjusted.Step)
}

func TestAthleteMetricHandlerEditAggregatedRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &athleteMetricServiceMock{editErr: appErrors.Clone(appErrors.ErrValidation, "Aggregated metric values are computed and cannot be edited")}
	handler := NewAthleteMetricHandler(svc, &boardExporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/athlete-metrics/3", bytes.NewReader([]byte(`{"value":4}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Edit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAthleteMetricHandlerExportAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &boardExporterMock{}
	handler := NewAthleteMetricHandler(&athleteMetricServiceMock{}, exporter)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/athletes/7/metrics/export", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exporter.format)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "athlete-7-metrics.csv")
}

func TestAthleteMetricHandlerExportUnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAthleteMetricHandler(&athleteMetricServiceMock{}, &boardExporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/athletes/7/metrics/export?format=xlsx", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAthleteMetricHandlerListBindsFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &athleteMetricServiceMock{}
	handler := NewAthleteMetricHandler(svc, &boardExporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/athlete-metrics?id_athlete=7&id_metric=2", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AthleteMetricFilter{AthleteID: 7, MetricID: 2}, svc.filter)
	rows, ok := decodeEnvelope(t, w).Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodGet, "/athlete-metrics?id_metric=-1", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
