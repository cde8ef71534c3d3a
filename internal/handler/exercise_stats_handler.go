package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

type exerciseStatsService interface {
	Today(ctx context.Context, athleteID int64) (*dto.TodayView, error)
	Start(ctx context.Context, req dto.StartExerciseRequest, actor string) (*dto.ExecutionResult, error)
	UpdateProgress(ctx context.Context, statsID int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error)
	UpdateHistoryProgress(ctx context.Context, historyID int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error)
	End(ctx context.Context, historyID int64, req dto.EndExerciseRequest, actor string) (*dto.ExecutionResult, error)
	History(ctx context.Context, routineExerciseID int64) ([]models.ExerciseHistory, error)
	Stats(ctx context.Context, historyID int64) (*models.ExerciseStats, error)
	DeleteHistory(ctx context.Context, id int64, actor string) error
}

// ExerciseStatsHandler exposes today's workout and the live exercise transitions.
type ExerciseStatsHandler struct {
	stats exerciseStatsService
}

// NewExerciseStatsHandler constructs ExerciseStatsHandler.
func NewExerciseStatsHandler(stats exerciseStatsService) *ExerciseStatsHandler {
	return &ExerciseStatsHandler{stats: stats}
}

// Today godoc
// @Summary Today's workout of an athlete
// @Tags ExerciseStats
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /exercise-stats/today/{id} [get]
// @Router /exercise-stats/athlete/{id}/today [get]
func (h *ExerciseStatsHandler) Today(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.stats.Today(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Start godoc
// @Summary Start today's occurrence of a scheduled exercise
// @Tags ExerciseStats
// @Accept json
// @Produce json
// @Param payload body dto.StartExerciseRequest true "Start payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exercise-stats/start [post]
func (h *ExerciseStatsHandler) Start(c *gin.Context) {
	var req dto.StartExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.stats.Start(c.Request.Context(), req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Progress godoc
// @Summary Report progress of an exercise in progress
// @Tags ExerciseStats
// @Accept json
// @Produce json
// @Param id path int true "Exercise stats ID"
// @Param payload body dto.ProgressRequest true "Concluded sets or goal"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exercise-stats/{id}/progress [patch]
func (h *ExerciseStatsHandler) Progress(c *gin.Context) {
	h.progress(c, h.stats.UpdateProgress)
}

// HistoryProgress godoc
// @Summary Report progress addressed by execution
// @Tags ExerciseStats
// @Accept json
// @Produce json
// @Param id path int true "History ID"
// @Param payload body dto.ProgressRequest true "Concluded sets or goal"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exercise-stats/history/{id}/progress [patch]
func (h *ExerciseStatsHandler) HistoryProgress(c *gin.Context) {
	h.progress(c, h.stats.UpdateHistoryProgress)
}

type progressFunc func(ctx context.Context, id int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error)

func (h *ExerciseStatsHandler) progress(c *gin.Context, update progressFunc) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := update(c.Request.Context(), id, req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// End godoc
// @Summary Finish an exercise
// @Description Ending below target requires confirm_incomplete.
// @Tags ExerciseStats
// @Accept json
// @Produce json
// @Param id path int true "History ID"
// @Param payload body dto.EndExerciseRequest true "Final values"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exercise-stats/history/{id}/end [patch]
func (h *ExerciseStatsHandler) End(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.EndExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.stats.End(c.Request.Context(), id, req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// History godoc
// @Summary Execution history of a scheduled exercise
// @Tags ExerciseStats
// @Produce json
// @Param id path int true "Routine exercise ID"
// @Success 200 {object} response.Envelope
// @Router /exercise-stats/routine-exercise/{id}/history [get]
func (h *ExerciseStatsHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	history, err := h.stats.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// Stats godoc
// @Summary Stats recorded for one execution
// @Tags ExerciseStats
// @Produce json
// @Param id path int true "History ID"
// @Success 200 {object} response.Envelope
// @Router /exercise-stats/history/{id} [get]
func (h *ExerciseStatsHandler) Stats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.stats.Stats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// DeleteHistory godoc
// @Summary Delete an execution
// @Tags ExerciseStats
// @Param id path int true "History ID"
// @Success 204
// @Router /exercise-stats/history/{id} [delete]
func (h *ExerciseStatsHandler) DeleteHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.stats.DeleteHistory(c.Request.Context(), id, actorOf(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
