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

type routineService interface {
	List(ctx context.Context, athleteID int64) ([]models.Routine, error)
	Get(ctx context.Context, id int64) (*models.Routine, error)
	Create(ctx context.Context, req dto.RoutineRequest, actor string) (*models.Routine, error)
	Rename(ctx context.Context, id int64, req dto.RenameRoutineRequest) (*models.Routine, error)
	Delete(ctx context.Context, id int64, actor string) error
	Exercises(ctx context.Context, routineID int64) ([]models.ScheduledExercise, error)
	ScheduledExercise(ctx context.Context, id int64) (*models.ScheduledExercise, error)
	ScheduleExercise(ctx context.Context, routineID int64, req dto.ScheduleExerciseRequest, actor string) (*models.ScheduledExercise, error)
	RemoveExercise(ctx context.Context, id int64, actor string) error
	Week(ctx context.Context, routineID int64, offset int) (*dto.WeekView, error)
	AthleteWeek(ctx context.Context, athleteID int64, offset int) (*dto.WeekView, error)
	ExcludedDates(ctx context.Context, routineExerciseID int64) ([]models.ExcludedDate, error)
	ExcludeDate(ctx context.Context, routineExerciseID int64, req dto.ExcludeDateRequest) (*models.ExcludedDate, error)
	RestoreDate(ctx context.Context, id int64) error
}

// RoutineHandler exposes routines, their weekly schedule and excluded dates.
type RoutineHandler struct {
	routines routineService
}

// NewRoutineHandler constructs RoutineHandler.
func NewRoutineHandler(routines routineService) *RoutineHandler {
	return &RoutineHandler{routines: routines}
}

// List godoc
// @Summary List routines
// @Tags Routines
// @Produce json
// @Param id_athlete query int false "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /routines [get]
func (h *RoutineHandler) List(c *gin.Context) {
	athleteID, ok := queryID(c, "id_athlete")
	if !ok {
		return
	}
	routines, err := h.routines.List(c.Request.Context(), athleteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, routines, nil)
}

// ByAthlete godoc
// @Summary List routines of an athlete
// @Tags Routines
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /routines/athlete/{id} [get]
func (h *RoutineHandler) ByAthlete(c *gin.Context) {
	athleteID, ok := pathID(c, "id")
	if !ok {
		return
	}
	routines, err := h.routines.List(c.Request.Context(), athleteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, routines, nil)
}

// Get godoc
// @Summary Get routine
// @Tags Routines
// @Produce json
// @Param id path int true "Routine ID"
// @Success 200 {object} response.Envelope
// @Router /routines/{id} [get]
func (h *RoutineHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	routine, err := h.routines.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, routine, nil)
}

// Create godoc
// @Summary Create routine
// @Tags Routines
// @Accept json
// @Produce json
// @Param payload body dto.RoutineRequest true "Routine payload"
// @Success 201 {object} response.Envelope
// @Router /routines [post]
func (h *RoutineHandler) Create(c *gin.Context) {
	var req dto.RoutineRequest
	if !bindJSON(c, &req) {
		return
	}
	routine, err := h.routines.Create(c.Request.Context(), req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, routine)
}

// Rename godoc
// @Summary Rename routine
// @Tags Routines
// @Accept json
// @Produce json
// @Param id path int true "Routine ID"
// @Param payload body dto.RenameRoutineRequest true "New name"
// @Success 200 {object} response.Envelope
// @Router /routines/{id} [put]
func (h *RoutineHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameRoutineRequest
	if !bindJSON(c, &req) {
		return
	}
	routine, err := h.routines.Rename(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, routine, nil)
}

// Delete godoc
// @Summary Delete routine and its scheduled exercises
// @Tags Routines
// @Param id path int true "Routine ID"
// @Success 204
// @Router /routines/{id} [delete]
func (h *RoutineHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.routines.Delete(c.Request.Context(), id, actorOf(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Exercises godoc
// @Summary List scheduled exercises of a routine
// @Tags Routines
// @Produce json
// @Param id path int true "Routine ID"
// @Success 200 {object} response.Envelope
// @Router /routines/{id}/exercises [get]
func (h *RoutineHandler) Exercises(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.routines.Exercises(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// ScheduleExercise godoc
// @Summary Schedule an exercise on a weekday slot
// @Tags Routines
// @Accept json
// @Produce json
// @Param id path int true "Routine ID"
// @Param payload body dto.ScheduleExerciseRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /routines/{id}/exercises [post]
func (h *RoutineHandler) ScheduleExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ScheduleExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.routines.ScheduleExercise(c.Request.Context(), id, req, actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// ScheduledExercise godoc
// @Summary Get a scheduled exercise
// @Tags Routines
// @Produce json
// @Param id path int true "Routine exercise ID"
// @Success 200 {object} response.Envelope
// @Router /routines/exercises/{id} [get]
func (h *RoutineHandler) ScheduledExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.routines.ScheduledExercise(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// RemoveExercise godoc
// @Summary Remove a scheduled exercise
// @Tags Routines
// @Param id path int true "Routine exercise ID"
// @Success 204
// @Router /routines/exercises/{id} [delete]
func (h *RoutineHandler) RemoveExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.routines.RemoveExercise(c.Request.Context(), id, actorOf(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Week godoc
// @Summary Resolve a routine into a calendar week
// @Tags Routines
// @Produce json
// @Param id path int true "Routine ID"
// @Param offset query int false "Weeks from the current one"
// @Success 200 {object} response.Envelope
// @Router /routines/{id}/week [get]
func (h *RoutineHandler) Week(c *gin.Context) {
	h.week(c, h.routines.Week)
}

// AthleteWeek godoc
// @Summary Resolve all routines of an athlete into a calendar week
// @Tags Routines
// @Produce json
// @Param id path int true "Athlete ID"
// @Param offset query int false "Weeks from the current one"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id}/week [get]
func (h *RoutineHandler) AthleteWeek(c *gin.Context) {
	h.week(c, h.routines.AthleteWeek)
}

func (h *RoutineHandler) week(c *gin.Context, resolve func(context.Context, int64, int) (*dto.WeekView, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offset"))
		return
	}
	view, err := resolve(c.Request.Context(), id, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// ExcludedDates godoc
// @Summary List excluded dates of a scheduled exercise
// @Tags Routines
// @Produce json
// @Param id path int true "Routine exercise ID"
// @Success 200 {object} response.Envelope
// @Router /routines/exercises/{id}/excluded-dates [get]
func (h *RoutineHandler) ExcludedDates(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dates, err := h.routines.ExcludedDates(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates, nil)
}

// ExcludeDate godoc
// @Summary Skip one occurrence of a scheduled exercise
// @Tags Routines
// @Accept json
// @Produce json
// @Param id path int true "Routine exercise ID"
// @Param payload body dto.ExcludeDateRequest true "Date payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /routines/exercises/{id}/excluded-dates [post]
func (h *RoutineHandler) ExcludeDate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ExcludeDateRequest
	if !bindJSON(c, &req) {
		return
	}
	excluded, err := h.routines.ExcludeDate(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, excluded)
}

// RestoreDate godoc
// @Summary Remove an excluded date
// @Tags Routines
// @Param id path int true "Excluded date ID"
// @Success 204
// @Router /routines/excluded-dates/{id} [delete]
func (h *RoutineHandler) RestoreDate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.routines.RestoreDate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
