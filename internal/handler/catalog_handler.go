package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/service"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

// SportHandler exposes sport endpoints.
type SportHandler struct {
	sports *service.SportService
}

// NewSportHandler constructs SportHandler.
func NewSportHandler(sports *service.SportService) *SportHandler {
	return &SportHandler{sports: sports}
}

// List godoc
// @Summary List sports
// @Tags Sports
// @Produce json
// @Param search query string false "Name filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /sports [get]
func (h *SportHandler) List(c *gin.Context) {
	sports, pagination, err := h.sports.List(c.Request.Context(), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sports, pagination)
}

// Get godoc
// @Summary Get sport
// @Tags Sports
// @Produce json
// @Param id path int true "Sport ID"
// @Success 200 {object} response.Envelope
// @Router /sports/{id} [get]
func (h *SportHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sport, err := h.sports.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport, nil)
}

// Create godoc
// @Summary Create sport
// @Tags Sports
// @Accept json
// @Produce json
// @Param payload body service.SportRequest true "Sport payload"
// @Success 201 {object} response.Envelope
// @Router /sports [post]
func (h *SportHandler) Create(c *gin.Context) {
	var req service.SportRequest
	if !bindJSON(c, &req) {
		return
	}
	sport, err := h.sports.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sport)
}

// Update godoc
// @Summary Replace sport
// @Tags Sports
// @Accept json
// @Produce json
// @Param id path int true "Sport ID"
// @Param payload body service.SportRequest true "Sport payload"
// @Success 200 {object} response.Envelope
// @Router /sports/{id} [put]
func (h *SportHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.SportRequest
	if !bindJSON(c, &req) {
		return
	}
	sport, err := h.sports.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport, nil)
}

// Delete godoc
// @Summary Delete sport
// @Tags Sports
// @Param id path int true "Sport ID"
// @Success 204
// @Router /sports/{id} [delete]
func (h *SportHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.sports.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CoachHandler exposes coach endpoints.
type CoachHandler struct {
	coaches *service.CoachService
	teams   *service.TeamService
}

// NewCoachHandler constructs CoachHandler.
func NewCoachHandler(coaches *service.CoachService, teams *service.TeamService) *CoachHandler {
	return &CoachHandler{coaches: coaches, teams: teams}
}

// List godoc
// @Summary List coaches
// @Tags Coaches
// @Produce json
// @Param search query string false "Name filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /coaches [get]
func (h *CoachHandler) List(c *gin.Context) {
	coaches, pagination, err := h.coaches.List(c.Request.Context(), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coaches, pagination)
}

// Get godoc
// @Summary Get coach
// @Tags Coaches
// @Produce json
// @Param id path int true "Coach ID"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id} [get]
func (h *CoachHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	coach, err := h.coaches.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// Teams godoc
// @Summary List teams of a coach
// @Tags Coaches
// @Produce json
// @Param id path int true "Coach ID"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id}/teams [get]
func (h *CoachHandler) Teams(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.coaches.Get(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	filter := models.TeamFilter{ListFilter: listFilter(c), CoachID: id}
	teams, pagination, err := h.teams.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teams, pagination)
}

// Create godoc
// @Summary Create coach
// @Tags Coaches
// @Accept json
// @Produce json
// @Param payload body service.CoachRequest true "Coach payload"
// @Success 201 {object} response.Envelope
// @Router /coaches [post]
func (h *CoachHandler) Create(c *gin.Context) {
	var req service.CoachRequest
	if !bindJSON(c, &req) {
		return
	}
	coach, err := h.coaches.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, coach)
}

// Update godoc
// @Summary Replace coach
// @Tags Coaches
// @Accept json
// @Produce json
// @Param id path int true "Coach ID"
// @Param payload body service.CoachRequest true "Coach payload"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id} [put]
func (h *CoachHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.CoachRequest
	if !bindJSON(c, &req) {
		return
	}
	coach, err := h.coaches.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// Delete godoc
// @Summary Delete coach
// @Tags Coaches
// @Param id path int true "Coach ID"
// @Success 204
// @Router /coaches/{id} [delete]
func (h *CoachHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.coaches.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AthleteHandler exposes athlete endpoints.
type AthleteHandler struct {
	athletes *service.AthleteService
	teams    *service.TeamService
}

// NewAthleteHandler constructs AthleteHandler.
func NewAthleteHandler(athletes *service.AthleteService, teams *service.TeamService) *AthleteHandler {
	return &AthleteHandler{athletes: athletes, teams: teams}
}

// List godoc
// @Summary List athletes
// @Tags Athletes
// @Produce json
// @Param search query string false "Name filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /athletes [get]
func (h *AthleteHandler) List(c *gin.Context) {
	athletes, pagination, err := h.athletes.List(c.Request.Context(), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athletes, pagination)
}

// Get godoc
// @Summary Get athlete
// @Tags Athletes
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id} [get]
func (h *AthleteHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	athlete, err := h.athletes.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athlete, nil)
}

// Teams godoc
// @Summary List teams of an athlete
// @Tags Athletes
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id}/teams [get]
func (h *AthleteHandler) Teams(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.athletes.Get(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	teams, err := h.teams.ListByAthlete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teams, nil)
}

// Create godoc
// @Summary Create athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Param payload body service.AthleteRequest true "Athlete payload"
// @Success 201 {object} response.Envelope
// @Router /athletes [post]
func (h *AthleteHandler) Create(c *gin.Context) {
	var req service.AthleteRequest
	if !bindJSON(c, &req) {
		return
	}
	athlete, err := h.athletes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, athlete)
}

// Update godoc
// @Summary Replace athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Param id path int true "Athlete ID"
// @Param payload body service.AthleteRequest true "Athlete payload"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id} [put]
func (h *AthleteHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.AthleteRequest
	if !bindJSON(c, &req) {
		return
	}
	athlete, err := h.athletes.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athlete, nil)
}

// Delete godoc
// @Summary Delete athlete
// @Tags Athletes
// @Param id path int true "Athlete ID"
// @Success 204
// @Router /athletes/{id} [delete]
func (h *AthleteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.athletes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
