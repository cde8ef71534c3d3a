package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

type metricService interface {
	List(ctx context.Context, filter models.MetricFilter) ([]models.Metric, error)
	Get(ctx context.Context, id int64) (*models.Metric, error)
	Formulas(ctx context.Context) ([]models.Formula, error)
	Formula(ctx context.Context, id int64) (*models.Formula, error)
	Create(ctx context.Context, req dto.MetricRequest, actor string) (*models.Metric, error)
	Update(ctx context.Context, id int64, req dto.MetricRequest, actor string) (*models.Metric, error)
	Delete(ctx context.Context, id int64, actor string) error
	Selectable(ctx context.Context, q dto.SelectableQuery) (*dto.SelectableResponse, error)
}

// MetricHandler exposes metric definitions and the formula catalog.
type MetricHandler struct {
	metrics metricService
}

// NewMetricHandler constructs MetricHandler.
func NewMetricHandler(metrics metricService) *MetricHandler {
	return &MetricHandler{metrics: metrics}
}

// List godoc
// @Summary List metric definitions
// @Tags Metrics
// @Produce json
// @Param id_coach query int false "Filter by coach"
// @Param id_sport query int false "Filter by sport"
// @Param aggregated query bool false "Only base (false) or aggregated (true) metrics"
// @Success 200 {object} response.Envelope
// @Router /metrics [get]
func (h *MetricHandler) List(c *gin.Context) {
	coachID, ok := queryID(c, "id_coach")
	if !ok {
		return
	}
	sportID, ok := queryID(c, "id_sport")
	if !ok {
		return
	}
	filter := models.MetricFilter{CoachID: coachID, SportID: sportID}
	if raw := c.Query("aggregated"); raw != "" {
		aggregated, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid aggregated"))
			return
		}
		filter.Aggregated = &aggregated
	}
	metrics, err := h.metrics.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metrics, nil)
}

// Get godoc
// @Summary Get metric definition
// @Tags Metrics
// @Produce json
// @Param id path int true "Metric ID"
// @Success 200 {object} response.Envelope
// @Router /metrics/{id} [get]
func (h *MetricHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	metric, err := h.metrics.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metric, nil)
}

// Create godoc
// @Summary Create metric definition
// @Tags Metrics
// @Accept json
// @Produce json
// @Param payload body dto.MetricRequest true "Metric payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /metrics [post]
func (h *MetricHandler) Create(c *gin.Context) {
	var req dto.MetricRequest
	if !bindJSON(c, &req) {
		return
	}
	metric, err := h.metrics.Create(c.Request.Context(), req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, metric)
}

// Update godoc
// @Summary Replace metric definition
// @Tags Metrics
// @Accept json
// @Produce json
// @Param id path int true "Metric ID"
// @Param payload body dto.MetricRequest true "Metric payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /metrics/{id} [put]
func (h *MetricHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MetricRequest
	if !bindJSON(c, &req) {
		return
	}
	metric, err := h.metrics.Update(c.Request.Context(), id, req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metric, nil)
}

// Delete godoc
// @Summary Delete metric definition
// @Tags Metrics
// @Param id path int true "Metric ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /metrics/{id} [delete]
func (h *MetricHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.metrics.Delete(c.Request.Context(), id, actorOf(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Selectable godoc
// @Summary Metrics that may fill a formula slot
// @Tags Metrics
// @Produce json
// @Param id_coach query int true "Coach ID"
// @Param id_sport query int true "Sport ID"
// @Param id_formula query int true "Formula ID"
// @Param chosen query []int false "Current slot values in order"
// @Param slot query int false "Slot index"
// @Param exclude_id query int false "Metric being edited"
// @Success 200 {object} response.Envelope
// @Router /metrics/selectable [get]
func (h *MetricHandler) Selectable(c *gin.Context) {
	var q dto.SelectableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	result, err := h.metrics.Selectable(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Formulas godoc
// @Summary List formulas
// @Tags Formulas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /formulas [get]
func (h *MetricHandler) Formulas(c *gin.Context) {
	formulas, err := h.metrics.Formulas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, formulas, nil)
}

// Formula godoc
// @Summary Get formula
// @Tags Formulas
// @Produce json
// @Param id path int true "Formula ID"
// @Success 200 {object} response.Envelope
// @Router /formulas/{id} [get]
func (h *MetricHandler) Formula(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	formula, err := h.metrics.Formula(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, formula, nil)
}
