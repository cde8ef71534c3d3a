package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/service"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

// TeamHandler exposes team endpoints.
type TeamHandler struct {
	teams *service.TeamService
}

// NewTeamHandler constructs TeamHandler.
func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// List godoc
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param search query string false "Name filter"
// @Param id_coach query int false "Filter by coach"
// @Param id_sport query int false "Filter by sport"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	coachID, ok := queryID(c, "id_coach")
	if !ok {
		return
	}
	sportID, ok := queryID(c, "id_sport")
	if !ok {
		return
	}
	h.list(c, models.TeamFilter{ListFilter: listFilter(c), CoachID: coachID, SportID: sportID})
}

// ByCoach godoc
// @Summary List teams of a coach
// @Tags Teams
// @Produce json
// @Param id path int true "Coach ID"
// @Success 200 {object} response.Envelope
// @Router /teams/coach/{id} [get]
func (h *TeamHandler) ByCoach(c *gin.Context) {
	coachID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, models.TeamFilter{ListFilter: listFilter(c), CoachID: coachID})
}

func (h *TeamHandler) list(c *gin.Context, filter models.TeamFilter) {
	teams, pagination, err := h.teams.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teams, pagination)
}

// Get godoc
// @Summary Get team
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} response.Envelope
// @Router /teams/{id} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	team, err := h.teams.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, team, nil)
}

// Athletes godoc
// @Summary List athletes enrolled in a team
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} response.Envelope
// @Router /teams/{id}/athletes [get]
func (h *TeamHandler) Athletes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	athletes, err := h.teams.Athletes(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athletes, nil)
}

// Create godoc
// @Summary Create team
// @Tags Teams
// @Accept json
// @Produce json
// @Param payload body service.TeamRequest true "Team payload"
// @Success 201 {object} response.Envelope
// @Router /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req service.TeamRequest
	if !bindJSON(c, &req) {
		return
	}
	team, err := h.teams.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, team)
}

// Update godoc
// @Summary Replace team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param payload body service.TeamRequest true "Team payload"
// @Success 200 {object} response.Envelope
// @Router /teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.TeamRequest
	if !bindJSON(c, &req) {
		return
	}
	team, err := h.teams.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, team, nil)
}

// Delete godoc
// @Summary Delete team
// @Tags Teams
// @Param id path int true "Team ID"
// @Success 204
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.teams.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
