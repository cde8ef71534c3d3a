package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/service"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

// ExerciseHandler exposes the exercise catalog and its types.
type ExerciseHandler struct {
	exercises *service.ExerciseService
}

// NewExerciseHandler constructs ExerciseHandler.
func NewExerciseHandler(exercises *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// List godoc
// @Summary List exercises
// @Tags Exercises
// @Produce json
// @Param sport_id query int false "Filter by sport"
// @Param search query string false "Name filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /exercises [get]
func (h *ExerciseHandler) List(c *gin.Context) {
	sportID, ok := queryID(c, "sport_id")
	if !ok {
		return
	}
	filter := models.ExerciseFilter{ListFilter: listFilter(c), SportID: sportID}
	exercises, pagination, err := h.exercises.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exercises, pagination)
}

// Types godoc
// @Summary List exercise types
// @Tags Exercises
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /type-exercises [get]
func (h *ExerciseHandler) Types(c *gin.Context) {
	types, err := h.exercises.Types(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types, nil)
}

// Get godoc
// @Summary Get exercise
// @Tags Exercises
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} response.Envelope
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exercises.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exercise, nil)
}

// Create godoc
// @Summary Create exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param payload body service.ExerciseRequest true "Exercise payload"
// @Success 201 {object} response.Envelope
// @Router /exercises [post]
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req service.ExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	exercise, err := h.exercises.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exercise)
}

// Update godoc
// @Summary Replace exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param id path int true "Exercise ID"
// @Param payload body service.ExerciseRequest true "Exercise payload"
// @Success 200 {object} response.Envelope
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.ExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	exercise, err := h.exercises.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exercise, nil)
}

// Delete godoc
// @Summary Delete exercise
// @Tags Exercises
// @Param id path int true "Exercise ID"
// @Success 204
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.exercises.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
