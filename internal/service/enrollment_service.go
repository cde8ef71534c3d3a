package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error)
	FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	Exists(ctx context.Context, teamID, athleteID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type teamReader interface {
	FindByID(ctx context.Context, id int64) (*models.Team, error)
}

type athleteReader interface {
	FindByID(ctx context.Context, id int64) (*models.Athlete, error)
}

// EnrollAthleteRequest describes enrollment creation request.
type EnrollAthleteRequest struct {
	TeamID    int64 `json:"id_team" validate:"required,gt=0"`
	AthleteID int64 `json:"id_athlete" validate:"required,gt=0"`
}

// EnrollmentService orchestrates enrollment workflows.
type EnrollmentService struct {
	repo      enrollmentRepository
	teams     teamReader
	athletes  athleteReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, teams teamReader, athletes athleteReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, teams: teams, athletes: athletes, validator: validate, logger: logger}
}

// List returns enrollments filtered by team or athlete.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Get returns one enrollment.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "enrollment")
	}
	return enrollment, nil
}

// Enroll places an athlete on a team once.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollAthleteRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if _, err := s.teams.FindByID(ctx, req.TeamID); err != nil {
		return nil, loadError(err, "team")
	}
	if _, err := s.athletes.FindByID(ctx, req.AthleteID); err != nil {
		return nil, loadError(err, "athlete")
	}
	exists, err := s.repo.Exists(ctx, req.TeamID, req.AthleteID)
	if err != nil {
		return nil, internalError(err, "failed to validate enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "athlete already enrolled in team")
	}
	enrollment := &models.Enrollment{TeamID: req.TeamID, AthleteID: req.AthleteID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, writeError(err, "failed to create enrollment", "athlete already enrolled in team", "")
	}
	s.logger.Info("athlete enrolled", zap.Int64("team_id", req.TeamID), zap.Int64("athlete_id", req.AthleteID))
	return s.Get(ctx, enrollment.ID)
}

// Remove deletes an enrollment.
func (s *EnrollmentService) Remove(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete enrollment")
	}
	return nil
}
