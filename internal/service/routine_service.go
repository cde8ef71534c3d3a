package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/recurrence"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type routineRepository interface {
	List(ctx context.Context, athleteID int64) ([]models.Routine, error)
	FindByID(ctx context.Context, id int64) (*models.Routine, error)
	Create(ctx context.Context, routine *models.Routine) error
	Rename(ctx context.Context, id int64, name string) error
	SoftDelete(ctx context.Context, id int64, actor string) error
}

type routineExerciseRepository interface {
	ListByRoutine(ctx context.Context, routineID int64) ([]models.ScheduledExercise, error)
	ListByAthlete(ctx context.Context, athleteID int64) ([]models.ScheduledExercise, error)
	FindByID(ctx context.Context, id int64) (*models.ScheduledExercise, error)
	Create(ctx context.Context, item *models.RoutineExercise) error
	SoftDelete(ctx context.Context, id int64, actor string) error
	ExcludedDates(ctx context.Context, routineExerciseIDs []int64) ([]models.ExcludedDate, error)
	FindExcludedDate(ctx context.Context, id int64) (*models.ExcludedDate, error)
	AddExcludedDate(ctx context.Context, date *models.ExcludedDate) error
	DeleteExcludedDate(ctx context.Context, id int64) error
}

type exerciseReader interface {
	FindByID(ctx context.Context, id int64) (*models.Exercise, error)
}

// RoutineService manages routines, their weekly exercise slots and exclusions.
type RoutineService struct {
	routines  routineRepository
	schedule  routineExerciseRepository
	athletes  athleteReader
	exercises exerciseReader
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewRoutineService constructs the routine service. Dates are resolved in loc.
func NewRoutineService(routines routineRepository, schedule routineExerciseRepository, athletes athleteReader, exercises exerciseReader, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *RoutineService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &RoutineService{
		routines:  routines,
		schedule:  schedule,
		athletes:  athletes,
		exercises: exercises,
		validator: validate,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// List returns live routines, optionally for one athlete.
func (s *RoutineService) List(ctx context.Context, athleteID int64) ([]models.Routine, error) {
	routines, err := s.routines.List(ctx, athleteID)
	if err != nil {
		return nil, internalError(err, "failed to list routines")
	}
	return routines, nil
}

// Get returns one live routine.
func (s *RoutineService) Get(ctx context.Context, id int64) (*models.Routine, error) {
	routine, err := s.routines.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "routine")
	}
	return routine, nil
}

// Create adds a routine for an athlete.
func (s *RoutineService) Create(ctx context.Context, req dto.RoutineRequest, actor string) (*models.Routine, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid routine payload")
	}
	if _, err := s.athletes.FindByID(ctx, req.AthleteID); err != nil {
		return nil, loadError(err, "athlete")
	}
	routine := &models.Routine{Name: req.Name, AthleteID: req.AthleteID, CreatedBy: actorOr(req.CreatedBy, actor)}
	if err := s.routines.Create(ctx, routine); err != nil {
		return nil, writeError(err, "failed to create routine", "", "athlete does not exist")
	}
	return routine, nil
}

// Rename changes a routine's name.
func (s *RoutineService) Rename(ctx context.Context, id int64, req dto.RenameRoutineRequest) (*models.Routine, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid routine payload")
	}
	routine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.routines.Rename(ctx, id, req.Name); err != nil {
		return nil, loadError(err, "routine")
	}
	routine.Name = req.Name
	return routine, nil
}

// Delete soft-deletes a routine together with its scheduled exercises.
func (s *RoutineService) Delete(ctx context.Context, id int64, actor string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.routines.SoftDelete(ctx, id, actor); err != nil {
		return internalError(err, "failed to delete routine")
	}
	s.logger.Info("routine deleted", zap.Int64("routine_id", id), zap.String("actor", actor))
	return nil
}

// Exercises lists the scheduled exercises of a routine.
func (s *RoutineService) Exercises(ctx context.Context, routineID int64) ([]models.ScheduledExercise, error) {
	if _, err := s.Get(ctx, routineID); err != nil {
		return nil, err
	}
	items, err := s.schedule.ListByRoutine(ctx, routineID)
	if err != nil {
		return nil, internalError(err, "failed to list routine exercises")
	}
	return items, nil
}

// ScheduleExercise places an exercise on a weekly slot of a routine.
func (s *RoutineService) ScheduleExercise(ctx context.Context, routineID int64, req dto.ScheduleExerciseRequest, actor string) (*models.ScheduledExercise, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid schedule payload")
	}
	if fields := recurrence.ValidateWindow(req.DaysOfWeek, req.StartHour, req.EndHour); !fields.Empty() {
		return nil, appErrors.NewValidation(fields)
	}
	if _, err := s.Get(ctx, routineID); err != nil {
		return nil, err
	}
	if _, err := s.exercises.FindByID(ctx, req.ExerciseID); err != nil {
		return nil, loadError(err, "exercise")
	}

	day, _ := recurrence.ParseWeekday(req.DaysOfWeek)
	item := &models.RoutineExercise{
		RoutineID:  routineID,
		ExerciseID: req.ExerciseID,
		DaysOfWeek: day,
		Start:      strings.TrimSpace(req.StartHour),
		End:        strings.TrimSpace(req.EndHour),
		CreatedBy:  actorOr(req.CreatedBy, actor),
	}
	if err := s.schedule.Create(ctx, item); err != nil {
		return nil, writeError(err, "failed to schedule exercise", "", "routine or exercise does not exist")
	}
	scheduled, err := s.schedule.FindByID(ctx, item.ID)
	if err != nil {
		return nil, loadError(err, "routine exercise")
	}
	return scheduled, nil
}

// ScheduledExercise returns one scheduled exercise with its exercise details.
func (s *RoutineService) ScheduledExercise(ctx context.Context, id int64) (*models.ScheduledExercise, error) {
	return s.scheduled(ctx, id)
}

// RemoveExercise soft-deletes a scheduled exercise.
func (s *RoutineService) RemoveExercise(ctx context.Context, id int64, actor string) error {
	if _, err := s.scheduled(ctx, id); err != nil {
		return err
	}
	if err := s.schedule.SoftDelete(ctx, id, actor); err != nil {
		return internalError(err, "failed to remove routine exercise")
	}
	return nil
}

// Week resolves a routine's schedule into the week at offset from the current one.
func (s *RoutineService) Week(ctx context.Context, routineID int64, offset int) (*dto.WeekView, error) {
	items, err := s.Exercises(ctx, routineID)
	if err != nil {
		return nil, err
	}
	return s.week(ctx, items, offset)
}

// AthleteWeek resolves every routine of an athlete into one week.
func (s *RoutineService) AthleteWeek(ctx context.Context, athleteID int64, offset int) (*dto.WeekView, error) {
	if _, err := s.athletes.FindByID(ctx, athleteID); err != nil {
		return nil, loadError(err, "athlete")
	}
	items, err := s.schedule.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, internalError(err, "failed to list athlete routine exercises")
	}
	return s.week(ctx, items, offset)
}

func (s *RoutineService) week(ctx context.Context, items []models.ScheduledExercise, offset int) (*dto.WeekView, error) {
	exclusions, err := loadExclusions(ctx, s.schedule, items)
	if err != nil {
		return nil, err
	}
	start := recurrence.WeekStart(s.now().In(s.loc), offset)
	return &dto.WeekView{
		Offset:    offset,
		WeekStart: start.Format(recurrence.DateLayout),
		Days:      recurrence.ResolveWeek(items, start, exclusions),
	}, nil
}

// ExcludedDates lists the exclusions of a scheduled exercise.
func (s *RoutineService) ExcludedDates(ctx context.Context, routineExerciseID int64) ([]models.ExcludedDate, error) {
	if _, err := s.scheduled(ctx, routineExerciseID); err != nil {
		return nil, err
	}
	dates, err := s.schedule.ExcludedDates(ctx, []int64{routineExerciseID})
	if err != nil {
		return nil, internalError(err, "failed to list excluded dates")
	}
	return dates, nil
}

// ExcludeDate suppresses one future occurrence of a scheduled exercise.
func (s *RoutineService) ExcludeDate(ctx context.Context, routineExerciseID int64, req dto.ExcludeDateRequest) (*models.ExcludedDate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid excluded date payload")
	}
	if _, err := s.scheduled(ctx, routineExerciseID); err != nil {
		return nil, err
	}

	fields := appErrors.FieldErrors{}
	date, err := recurrence.ParseDate(strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		fields.Add(recurrence.FieldExcludedDate, "Excluded date must be in YYYY-MM-DD format")
		return nil, appErrors.NewValidation(fields)
	}
	fields = recurrence.ValidateExclusion(date, s.now())
	if !fields.Empty() {
		return nil, appErrors.NewValidation(fields)
	}

	excluded := &models.ExcludedDate{
		RoutineExerciseID: routineExerciseID,
		Date:              models.NewDate(date),
		Reason:            trimmedOrNil(req.Reason),
	}
	if err := s.schedule.AddExcludedDate(ctx, excluded); err != nil {
		return nil, writeError(err, "failed to exclude date", "date already excluded", "")
	}
	return excluded, nil
}

// RestoreDate removes an exclusion.
func (s *RoutineService) RestoreDate(ctx context.Context, id int64) error {
	if _, err := s.schedule.FindExcludedDate(ctx, id); err != nil {
		return loadError(err, "excluded date")
	}
	if err := s.schedule.DeleteExcludedDate(ctx, id); err != nil {
		return internalError(err, "failed to delete excluded date")
	}
	return nil
}

func (s *RoutineService) scheduled(ctx context.Context, id int64) (*models.ScheduledExercise, error) {
	item, err := s.schedule.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "routine exercise")
	}
	return item, nil
}

type exclusionSource interface {
	ExcludedDates(ctx context.Context, routineExerciseIDs []int64) ([]models.ExcludedDate, error)
}

func loadExclusions(ctx context.Context, src exclusionSource, items []models.ScheduledExercise) (recurrence.Exclusions, error) {
	exclusions := recurrence.Exclusions{}
	if len(items) == 0 {
		return exclusions, nil
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	dates, err := src.ExcludedDates(ctx, ids)
	if err != nil {
		return nil, internalError(err, "failed to list excluded dates")
	}
	for _, d := range dates {
		exclusions.Add(d.RoutineExerciseID, d.Date.Time)
	}
	return exclusions, nil
}

func trimmedOrNil(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
