package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
)

type athleteRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Athlete, int, error)
	FindByID(ctx context.Context, id int64) (*models.Athlete, error)
	Create(ctx context.Context, athlete *models.Athlete) error
	Update(ctx context.Context, athlete *models.Athlete) error
	Delete(ctx context.Context, id int64) error
}

// AthleteRequest holds the payload for creating or replacing an athlete.
type AthleteRequest struct {
	Name      string       `json:"name" validate:"required"`
	Email     *string      `json:"email" validate:"omitempty,email"`
	BirthDate *models.Date `json:"birth_date"`
}

// AthleteService handles athlete use-cases.
type AthleteService struct {
	repo      athleteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAthleteService constructs the athlete service.
func NewAthleteService(repo athleteRepository, validate *validator.Validate, logger *zap.Logger) *AthleteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AthleteService{repo: repo, validator: validate, logger: logger}
}

// List returns athletes and pagination metadata.
func (s *AthleteService) List(ctx context.Context, filter models.ListFilter) ([]models.Athlete, *models.Pagination, error) {
	athletes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list athletes")
	}
	return athletes, paginate(filter, total), nil
}

// Get returns one athlete.
func (s *AthleteService) Get(ctx context.Context, id int64) (*models.Athlete, error) {
	athlete, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "athlete")
	}
	return athlete, nil
}

// Create registers an athlete.
func (s *AthleteService) Create(ctx context.Context, req AthleteRequest) (*models.Athlete, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid athlete payload")
	}
	athlete := &models.Athlete{Name: req.Name, Email: req.Email, BirthDate: nonZeroDate(req.BirthDate)}
	if err := s.repo.Create(ctx, athlete); err != nil {
		return nil, writeError(err, "failed to create athlete", "email already used", "")
	}
	return athlete, nil
}

// Update replaces an athlete.
func (s *AthleteService) Update(ctx context.Context, id int64, req AthleteRequest) (*models.Athlete, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid athlete payload")
	}
	athlete, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	athlete.Name, athlete.Email, athlete.BirthDate = req.Name, req.Email, nonZeroDate(req.BirthDate)
	if err := s.repo.Update(ctx, athlete); err != nil {
		return nil, writeError(err, "failed to update athlete", "email already used", "")
	}
	return athlete, nil
}

// Delete removes an athlete without routines or metric history.
func (s *AthleteService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete athlete", "", "athlete still has routines or metrics")
	}
	return nil
}

func nonZeroDate(d *models.Date) *models.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
