package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
)

type coachRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Coach, int, error)
	FindByID(ctx context.Context, id int64) (*models.Coach, error)
	Create(ctx context.Context, coach *models.Coach) error
	Update(ctx context.Context, coach *models.Coach) error
	Delete(ctx context.Context, id int64) error
}

// CoachRequest holds the payload for creating or replacing a coach.
type CoachRequest struct {
	Name    string `json:"name" validate:"required"`
	LevelID *int64 `json:"id_level" validate:"omitempty,gt=0"`
}

// CoachService handles coach use-cases.
type CoachService struct {
	repo      coachRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCoachService constructs the coach service.
func NewCoachService(repo coachRepository, validate *validator.Validate, logger *zap.Logger) *CoachService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoachService{repo: repo, validator: validate, logger: logger}
}

// List returns coaches and pagination metadata.
func (s *CoachService) List(ctx context.Context, filter models.ListFilter) ([]models.Coach, *models.Pagination, error) {
	coaches, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list coaches")
	}
	return coaches, paginate(filter, total), nil
}

// Get returns one coach.
func (s *CoachService) Get(ctx context.Context, id int64) (*models.Coach, error) {
	coach, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "coach")
	}
	return coach, nil
}

// Create registers a coach.
func (s *CoachService) Create(ctx context.Context, req CoachRequest) (*models.Coach, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid coach payload")
	}
	coach := &models.Coach{Name: req.Name, LevelID: req.LevelID}
	if err := s.repo.Create(ctx, coach); err != nil {
		return nil, internalError(err, "failed to create coach")
	}
	return coach, nil
}

// Update replaces a coach.
func (s *CoachService) Update(ctx context.Context, id int64, req CoachRequest) (*models.Coach, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid coach payload")
	}
	coach, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	coach.Name, coach.LevelID = req.Name, req.LevelID
	if err := s.repo.Update(ctx, coach); err != nil {
		return nil, internalError(err, "failed to update coach")
	}
	return coach, nil
}

// Delete removes a coach that owns no teams or metrics.
func (s *CoachService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete coach", "", "coach still owns teams or metrics")
	}
	return nil
}
