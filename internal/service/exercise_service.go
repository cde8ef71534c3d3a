package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type exerciseRepository interface {
	List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, int, error)
	FindByID(ctx context.Context, id int64) (*models.Exercise, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, id int64) error
	ListTypes(ctx context.Context) ([]models.TypeExercise, error)
}

// ExerciseRequest holds the payload for creating or replacing an exercise.
// Sets and Reps apply to type 1, Goal to type 2.
type ExerciseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	TypeID      int64   `json:"id_type" validate:"required,oneof=1 2"`
	SportID     int64   `json:"id_sport" validate:"required,gt=0"`
	Sets        *int    `json:"sets"`
	Reps        *int    `json:"reps"`
	Goal        *int    `json:"goal"`
}

// ExerciseService handles exercise use-cases.
type ExerciseService struct {
	repo      exerciseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExerciseService constructs the exercise service.
func NewExerciseService(repo exerciseRepository, validate *validator.Validate, logger *zap.Logger) *ExerciseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExerciseService{repo: repo, validator: validate, logger: logger}
}

// List returns exercises and pagination metadata.
func (s *ExerciseService) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, *models.Pagination, error) {
	exercises, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list exercises")
	}
	return exercises, paginate(filter.ListFilter, total), nil
}

// Types returns the exercise type catalog.
func (s *ExerciseService) Types(ctx context.Context) ([]models.TypeExercise, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list exercise types")
	}
	return types, nil
}

// Get returns one exercise.
func (s *ExerciseService) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	exercise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "exercise")
	}
	return exercise, nil
}

// Create registers an exercise.
func (s *ExerciseService) Create(ctx context.Context, req ExerciseRequest) (*models.Exercise, error) {
	exercise, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, writeError(err, "failed to create exercise", "", "sport does not exist")
	}
	return exercise, nil
}

// Update replaces an exercise.
func (s *ExerciseService) Update(ctx context.Context, id int64, req ExerciseRequest) (*models.Exercise, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exercise, err := s.build(req)
	if err != nil {
		return nil, err
	}
	exercise.ID, exercise.PhotoPath, exercise.VideoPath, exercise.CreatedAt = current.ID, current.PhotoPath, current.VideoPath, current.CreatedAt
	if err := s.repo.Update(ctx, exercise); err != nil {
		return nil, writeError(err, "failed to update exercise", "", "sport does not exist")
	}
	return exercise, nil
}

// Delete removes an exercise that no routine uses.
func (s *ExerciseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete exercise", "", "exercise is still scheduled in a routine")
	}
	return nil
}

// build validates the request and stores only the columns of its scheme.
func (s *ExerciseService) build(req ExerciseRequest) (*models.Exercise, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid exercise payload")
	}
	draft := models.Exercise{TypeID: req.TypeID, Sets: req.Sets, Reps: req.Reps, Goal: req.Goal}
	scheme, err := draft.Scheme()
	if err != nil {
		fields := appErrors.FieldErrors{}
		if req.TypeID == models.TypeGoal {
			fields.Add("goal", "Goal must be greater than zero")
		} else {
			fields.Add("sets", "Sets and reps must be greater than zero")
		}
		return nil, appErrors.NewValidation(fields)
	}
	exercise := &models.Exercise{Name: req.Name, Description: req.Description, SportID: req.SportID}
	exercise.ApplyScheme(scheme)
	return exercise, nil
}
