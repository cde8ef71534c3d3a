package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
)

type sportRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Sport, int, error)
	FindByID(ctx context.Context, id int64) (*models.Sport, error)
	Create(ctx context.Context, sport *models.Sport) error
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int64) error
}

// SportRequest holds the payload for creating or replacing a sport.
type SportRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// SportService handles sport use-cases.
type SportService struct {
	repo      sportRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSportService constructs the sport service.
func NewSportService(repo sportRepository, validate *validator.Validate, logger *zap.Logger) *SportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SportService{repo: repo, validator: validate, logger: logger}
}

// List returns sports and pagination metadata.
func (s *SportService) List(ctx context.Context, filter models.ListFilter) ([]models.Sport, *models.Pagination, error) {
	sports, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list sports")
	}
	return sports, paginate(filter, total), nil
}

// Get returns one sport.
func (s *SportService) Get(ctx context.Context, id int64) (*models.Sport, error) {
	sport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "sport")
	}
	return sport, nil
}

// Create registers a sport.
func (s *SportService) Create(ctx context.Context, req SportRequest) (*models.Sport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid sport payload")
	}
	sport := &models.Sport{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, sport); err != nil {
		return nil, writeError(err, "failed to create sport", "sport name already used", "")
	}
	return sport, nil
}

// Update replaces a sport.
func (s *SportService) Update(ctx context.Context, id int64, req SportRequest) (*models.Sport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid sport payload")
	}
	sport, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sport.Name, sport.Description = req.Name, req.Description
	if err := s.repo.Update(ctx, sport); err != nil {
		return nil, writeError(err, "failed to update sport", "sport name already used", "")
	}
	return sport, nil
}

// Delete removes a sport that nothing references.
func (s *SportService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete sport", "", "sport is still in use")
	}
	return nil
}
