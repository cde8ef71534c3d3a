package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/middleware"
	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/pkg/export"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

type athleteMetricService interface {
	List(ctx context.Context, filter models.AthleteMetricFilter) ([]models.AthleteMetric, error)
	Get(ctx context.Context, id int64) (*models.AthleteMetric, error)
	Assign(ctx context.Context, req dto.AssignMetricRequest, actor string) (*models.AthleteMetric, error)
	Increment(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error)
	Decrement(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error)
	Edit(ctx context.Context, id int64, req dto.EditMetricValueRequest, actor string) (*models.AthleteMetric, error)
	Delete(ctx context.Context, id int64, actor string) error
	Board(ctx context.Context, athleteID int64) (*dto.AthleteBoard, bool, error)
}

type boardExporter interface {
	AthleteBoard(ctx context.Context, athleteID int64, rawFormat string) (*export.Report, error)
}

// AthleteMetricHandler exposes metric assignments and the athlete board.
type AthleteMetricHandler struct {
	assignments athleteMetricService
	reports     boardExporter
}

// NewAthleteMetricHandler constructs AthleteMetricHandler.
func NewAthleteMetricHandler(assignments athleteMetricService, reports boardExporter) *AthleteMetricHandler {
	return &AthleteMetricHandler{assignments: assignments, reports: reports}
}

// List godoc
// @Summary List metric assignments
// @Tags AthleteMetrics
// @Produce json
// @Param id_athlete query int false "Filter by athlete"
// @Param id_metric query int false "Filter by metric"
// @Success 200 {object} response.Envelope
// @Router /athlete-metrics [get]
func (h *AthleteMetricHandler) List(c *gin.Context) {
	athleteID, ok := queryID(c, "id_athlete")
	if !ok {
		return
	}
	metricID, ok := queryID(c, "id_metric")
	if !ok {
		return
	}
	rows, err := h.assignments.List(c.Request.Context(), models.AthleteMetricFilter{AthleteID: athleteID, MetricID: metricID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Get godoc
// @Summary Get metric assignment
// @Tags AthleteMetrics
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /athlete-metrics/{id} [get]
func (h *AthleteMetricHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	row, err := h.assignments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row, nil)
}

// Assign godoc
// @Summary Assign a metric to an athlete
// @Tags AthleteMetrics
// @Accept json
// @Produce json
// @Param payload body dto.AssignMetricRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /athlete-metrics [post]
func (h *AthleteMetricHandler) Assign(c *gin.Context) {
	var req dto.AssignMetricRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.assignments.Assign(c.Request.Context(), req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// Increment godoc
// @Summary Increase a base metric value
// @Tags AthleteMetrics
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param payload body dto.AdjustMetricValueRequest false "Step, default 1"
// @Success 200 {object} response.Envelope
// @Router /athlete-metrics/{id}/increment [post]
func (h *AthleteMetricHandler) Increment(c *gin.Context) {
	h.adjust(c, h.assignments.Increment)
}

// Decrement godoc
// @Summary Decrease a base metric value, never below zero
// @Tags AthleteMetrics
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param payload body dto.AdjustMetricValueRequest false "Step, default 1"
// @Success 200 {object} response.Envelope
// @Router /athlete-metrics/{id}/decrement [post]
func (h *AthleteMetricHandler) Decrement(c *gin.Context) {
	h.adjust(c, h.assignments.Decrement)
}

type adjustFunc func(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error)

func (h *AthleteMetricHandler) adjust(c *gin.Context, apply adjustFunc) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustMetricValueRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	row, err := apply(c.Request.Context(), id, req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row, nil)
}

// Edit godoc
// @Summary Overwrite a base metric value
// @Tags AthleteMetrics
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param payload body dto.EditMetricValueRequest true "New value"
// @Success 200 {object} response.Envelope
// @Router /athlete-metrics/{id} [put]
func (h *AthleteMetricHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.EditMetricValueRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.assignments.Edit(c.Request.Context(), id, req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row, nil)
}

// Delete godoc
// @Summary Remove a metric assignment
// @Tags AthleteMetrics
// @Param id path int true "Assignment ID"
// @Success 204
// @Router /athlete-metrics/{id} [delete]
func (h *AthleteMetricHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.assignments.Delete(c.Request.Context(), id, actorOf(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Board godoc
// @Summary Athlete metric board
// @Description Base values summed per metric and aggregated values computed from them.
// @Tags AthleteMetrics
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id}/metrics [get]
func (h *AthleteMetricHandler) Board(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	board, hit, err := h.assignments.Board(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, board, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export athlete metric board
// @Tags AthleteMetrics
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Athlete ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /athletes/{id}/metrics/export [get]
func (h *AthleteMetricHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.reports.AthleteBoard(c.Request.Context(), id, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Body)
}
