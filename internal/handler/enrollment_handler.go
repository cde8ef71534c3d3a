package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/service"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param id_team query int false "Filter by team"
// @Param id_athlete query int false "Filter by athlete"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	teamID, ok := queryID(c, "id_team")
	if !ok {
		return
	}
	athleteID, ok := queryID(c, "id_athlete")
	if !ok {
		return
	}
	h.list(c, models.EnrollmentFilter{TeamID: teamID, AthleteID: athleteID})
}

// ByTeam godoc
// @Summary List enrollments of a team
// @Tags Enrollments
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/team/{id} [get]
func (h *EnrollmentHandler) ByTeam(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, models.EnrollmentFilter{TeamID: id})
}

// ByAthlete godoc
// @Summary List enrollments of an athlete
// @Tags Enrollments
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/athlete/{id} [get]
func (h *EnrollmentHandler) ByAthlete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, models.EnrollmentFilter{AthleteID: id})
}

func (h *EnrollmentHandler) list(c *gin.Context, filter models.EnrollmentFilter) {
	enrollments, err := h.enrollments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment, nil)
}

// Create godoc
// @Summary Enroll athlete in a team
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.EnrollAthleteRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.EnrollAthleteRequest
	if !bindJSON(c, &req) {
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Delete godoc
// @Summary Remove athlete from a team
// @Tags Enrollments
// @Param id path int true "Enrollment ID"
// @Success 204
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.enrollments.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
