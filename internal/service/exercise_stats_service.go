package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/recurrence"
	"github.com/noah-isme/teamfit-api/internal/repository"
	"github.com/noah-isme/teamfit-api/pkg/database"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type exerciseStatsRepository interface {
	LatestHistoryBetween(ctx context.Context, routineExerciseIDs []int64, from, to time.Time) ([]models.ExerciseHistory, error)
	ListHistory(ctx context.Context, routineExerciseID int64) ([]models.ExerciseHistory, error)
	FindHistory(ctx context.Context, id int64) (*models.ExerciseHistory, error)
	FindHistoryByStats(ctx context.Context, statsID int64) (*models.ExerciseHistory, error)
	FindStats(ctx context.Context, id int64) (*models.ExerciseStats, error)
	FindStatsByIDs(ctx context.Context, ids []int64) ([]models.ExerciseStats, error)
	Start(ctx context.Context, stats *models.ExerciseStats, history *models.ExerciseHistory) error
	UpdateProgress(ctx context.Context, stats *models.ExerciseStats) error
	Complete(ctx context.Context, stats *models.ExerciseStats, history *models.ExerciseHistory) error
	SoftDeleteHistory(ctx context.Context, id int64, actor string) error
}

type scheduleReader interface {
	ListByAthlete(ctx context.Context, athleteID int64) ([]models.ScheduledExercise, error)
	FindByID(ctx context.Context, id int64) (*models.ScheduledExercise, error)
	ExcludedDates(ctx context.Context, routineExerciseIDs []int64) ([]models.ExcludedDate, error)
}

// Transition labels recorded in telemetry.
const (
	TransitionStart    = "start"
	TransitionProgress = "progress"
	TransitionEnd      = "end"
)

// ExerciseStatsService drives the live execution of today's scheduled exercises.
type ExerciseStatsService struct {
	repo      exerciseStatsRepository
	schedule  scheduleReader
	athletes  athleteReader
	telemetry *TelemetryService
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewExerciseStatsService constructs the execution service. Days are resolved in loc.
func NewExerciseStatsService(repo exerciseStatsRepository, schedule scheduleReader, athletes athleteReader, telemetry *TelemetryService, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *ExerciseStatsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExerciseStatsService{
		repo:      repo,
		schedule:  schedule,
		athletes:  athletes,
		telemetry: telemetry,
		validator: validate,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// Today lists the athlete's occurrences for the current day with their state.
// Occurrences excluded for today are omitted.
func (s *ExerciseStatsService) Today(ctx context.Context, athleteID int64) (*dto.TodayView, error) {
	if _, err := s.athletes.FindByID(ctx, athleteID); err != nil {
		return nil, loadError(err, "athlete")
	}
	items, err := s.schedule.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, internalError(err, "failed to list athlete routine exercises")
	}
	exclusions, err := loadExclusions(ctx, s.schedule, items)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	day := recurrence.Midnight(now)
	todays := recurrence.OccursOn(items, day, exclusions)
	view := &dto.TodayView{
		AthleteID: athleteID,
		Date:      day.Format(recurrence.DateLayout),
		Weekday:   string(recurrence.WeekdayOf(day)),
		Items:     make([]dto.TodayItem, 0, len(todays)),
	}
	if len(todays) == 0 {
		return view, nil
	}

	ids := make([]int64, 0, len(todays))
	for _, item := range todays {
		ids = append(ids, item.ID)
	}
	histories, err := s.repo.LatestHistoryBetween(ctx, ids, day.UTC(), day.AddDate(0, 0, 1).UTC())
	if err != nil {
		return nil, internalError(err, "failed to list exercise history")
	}
	byItem := make(map[int64]models.ExerciseHistory, len(histories))
	statsIDs := make([]int64, 0, len(histories))
	for _, h := range histories {
		byItem[h.RoutineExerciseID] = h
		statsIDs = append(statsIDs, h.StatsID)
	}
	stats := map[int64]models.ExerciseStats{}
	if len(statsIDs) > 0 {
		rows, err := s.repo.FindStatsByIDs(ctx, statsIDs)
		if err != nil {
			return nil, internalError(err, "failed to load exercise stats")
		}
		for _, row := range rows {
			stats[row.ID] = row
		}
	}

	for _, item := range todays {
		out := dto.TodayItem{ScheduledExercise: item, Status: models.StatusNotStarted}
		if h, ok := byItem[item.ID]; ok {
			historyID := h.ID
			out.Status, out.HistoryID = h.Status, &historyID
			if st, ok := stats[h.StatsID]; ok {
				st := st
				out.Stats = &st
				if h.Status == models.StatusInProgress {
					elapsed := int64(now.Sub(st.StartDate).Seconds())
					if elapsed < 0 {
						elapsed = 0
					}
					out.ElapsedSeconds = &elapsed
				}
			}
		}
		view.Items = append(view.Items, out)
	}
	return view, nil
}

// Start begins today's occurrence of a scheduled exercise, copying its targets.
func (s *ExerciseStatsService) Start(ctx context.Context, req dto.StartExerciseRequest, actor string) (*dto.ExecutionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid start payload")
	}
	item, err := s.schedule.FindByID(ctx, req.RoutineExerciseID)
	if err != nil {
		return nil, loadError(err, "routine exercise")
	}

	now := s.now().In(s.loc)
	day := recurrence.Midnight(now)
	if recurrence.WeekdayOf(day) != item.DaysOfWeek {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Exercise is not scheduled today")
	}
	exclusions, err := loadExclusions(ctx, s.schedule, []models.ScheduledExercise{*item})
	if err != nil {
		return nil, err
	}
	if recurrence.IsExcluded(exclusions[item.ID], day) {
		return nil, appErrors.ErrExcludedDate
	}

	if err := s.startedToday(ctx, item.ID, day); err != nil {
		return nil, err
	}

	exercise := item.Exercise()
	if _, err := exercise.Scheme(); err != nil {
		return nil, validationError(err, "exercise has no valid targets")
	}
	zero := 0
	stats := &models.ExerciseStats{
		Sets:      exercise.Sets,
		Reps:      exercise.Reps,
		Goal:      exercise.Goal,
		StartDate: now.UTC(),
	}
	if exercise.TypeID == models.TypeGoal {
		stats.ConcludedGoal = &zero
	} else {
		stats.ConcludedSets, stats.ConcludedReps = &zero, &zero
	}
	history := &models.ExerciseHistory{
		RoutineExerciseID: item.ID,
		Status:            models.StatusInProgress,
		PerformedOn:       models.NewDate(day),
		CreatedBy:         actorOr(req.CreatedBy, actor),
		CreatedAt:         now.UTC(),
	}
	if err := s.repo.Start(ctx, stats, history); err != nil {
		if database.IsUniqueViolation(err) {
			// A concurrent start won the slot for today.
			if err := s.startedToday(ctx, item.ID, day); err != nil {
				return nil, err
			}
			return nil, appErrors.ErrAlreadyInProgress
		}
		return nil, internalError(err, "failed to start exercise")
	}
	s.telemetry.RecordTransition(TransitionStart)
	s.logger.Info("exercise started", zap.Int64("routine_exercise_id", item.ID), zap.Int64("history_id", history.ID))
	return &dto.ExecutionResult{History: *history, Stats: *stats, Complete: false}, nil
}

// UpdateProgress records progress on the in-progress exercise owning statsID.
func (s *ExerciseStatsService) UpdateProgress(ctx context.Context, statsID int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error) {
	history, err := s.repo.FindHistoryByStats(ctx, statsID)
	if err != nil {
		return nil, loadError(err, "exercise stats")
	}
	return s.progress(ctx, history, req)
}

// UpdateHistoryProgress records progress addressed by history id.
func (s *ExerciseStatsService) UpdateHistoryProgress(ctx context.Context, historyID int64, req dto.ProgressRequest, actor string) (*dto.ExecutionResult, error) {
	history, err := s.repo.FindHistory(ctx, historyID)
	if err != nil {
		return nil, loadError(err, "exercise history")
	}
	return s.progress(ctx, history, req)
}

func (s *ExerciseStatsService) progress(ctx context.Context, history *models.ExerciseHistory, req dto.ProgressRequest) (*dto.ExecutionResult, error) {
	stats, err := s.inProgress(ctx, history)
	if err != nil {
		return nil, err
	}
	if err := applyProgress(stats, req, true); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProgress(ctx, stats); err != nil {
		return nil, transitionError(err, "failed to update exercise progress")
	}
	s.telemetry.RecordTransition(TransitionProgress)
	return &dto.ExecutionResult{History: *history, Stats: *stats, Complete: isComplete(stats)}, nil
}

// End completes an in-progress exercise. Ending below target requires
// confirm_incomplete.
func (s *ExerciseStatsService) End(ctx context.Context, historyID int64, req dto.EndExerciseRequest, actor string) (*dto.ExecutionResult, error) {
	history, err := s.repo.FindHistory(ctx, historyID)
	if err != nil {
		return nil, loadError(err, "exercise history")
	}
	stats, err := s.inProgress(ctx, history)
	if err != nil {
		return nil, err
	}
	if err := applyProgress(stats, req.ProgressRequest, false); err != nil {
		return nil, err
	}
	complete := isComplete(stats)
	if !complete && !req.ConfirmIncomplete {
		return nil, appErrors.ErrIncompleteConfirmation
	}

	now := s.now().UTC()
	updatedBy := actorOr(req.UpdatedBy, actor)
	stats.EndDate = &now
	history.Status, history.UpdatedBy, history.UpdatedAt = models.StatusCompleted, &updatedBy, &now
	if err := s.repo.Complete(ctx, stats, history); err != nil {
		return nil, transitionError(err, "failed to end exercise")
	}
	s.telemetry.RecordTransition(TransitionEnd)
	s.logger.Info("exercise completed", zap.Int64("history_id", history.ID), zap.Bool("target_reached", complete))
	return &dto.ExecutionResult{History: *history, Stats: *stats, Complete: complete}, nil
}

// History lists past executions of a scheduled exercise.
func (s *ExerciseStatsService) History(ctx context.Context, routineExerciseID int64) ([]models.ExerciseHistory, error) {
	if _, err := s.schedule.FindByID(ctx, routineExerciseID); err != nil {
		return nil, loadError(err, "routine exercise")
	}
	rows, err := s.repo.ListHistory(ctx, routineExerciseID)
	if err != nil {
		return nil, internalError(err, "failed to list exercise history")
	}
	return rows, nil
}

// Stats returns the stats row behind a history entry.
func (s *ExerciseStatsService) Stats(ctx context.Context, historyID int64) (*models.ExerciseStats, error) {
	history, err := s.repo.FindHistory(ctx, historyID)
	if err != nil {
		return nil, loadError(err, "exercise history")
	}
	stats, err := s.repo.FindStats(ctx, history.StatsID)
	if err != nil {
		return nil, loadError(err, "exercise stats")
	}
	return stats, nil
}

// DeleteHistory soft-deletes a history entry.
func (s *ExerciseStatsService) DeleteHistory(ctx context.Context, id int64, actor string) error {
	if _, err := s.repo.FindHistory(ctx, id); err != nil {
		return loadError(err, "exercise history")
	}
	if err := s.repo.SoftDeleteHistory(ctx, id, actor); err != nil {
		return internalError(err, "failed to delete exercise history")
	}
	return nil
}

func (s *ExerciseStatsService) inProgress(ctx context.Context, history *models.ExerciseHistory) (*models.ExerciseStats, error) {
	if history.Status != models.StatusInProgress {
		return nil, appErrors.ErrNotInProgress
	}
	stats, err := s.repo.FindStats(ctx, history.StatsID)
	if err != nil {
		return nil, loadError(err, "exercise stats")
	}
	return stats, nil
}

// startedToday rejects a start when the slot already has a live execution for day.
func (s *ExerciseStatsService) startedToday(ctx context.Context, routineExerciseID int64, day time.Time) error {
	latest, err := s.repo.LatestHistoryBetween(ctx, []int64{routineExerciseID}, day.UTC(), day.AddDate(0, 0, 1).UTC())
	if err != nil {
		return internalError(err, "failed to list exercise history")
	}
	if len(latest) == 0 {
		return nil
	}
	switch latest[0].Status {
	case models.StatusInProgress:
		return appErrors.ErrAlreadyInProgress
	case models.StatusCompleted:
		return appErrors.ErrAlreadyCompleted
	}
	return nil
}

func transitionError(err error, message string) error {
	if errors.Is(err, repository.ErrHistoryNotInProgress) {
		return appErrors.ErrNotInProgress
	}
	return internalError(err, message)
}

// applyProgress stores the reported value matching the exercise type. When
// required is false an empty report keeps the stored progress.
func applyProgress(stats *models.ExerciseStats, req dto.ProgressRequest, required bool) error {
	fields := appErrors.FieldErrors{}
	switch scheme := stats.Scheme().(type) {
	case models.Goal:
		if req.ConcludedSets != nil {
			fields.Add("concluded_sets", "Goal exercises track concluded_goal")
			break
		}
		if req.ConcludedGoal == nil {
			if required {
				fields.Add("concluded_goal", "Concluded goal is required")
			}
			break
		}
		goal := scheme.Apply(*req.ConcludedGoal)
		stats.ConcludedGoal = &goal
	case models.SetsReps:
		if req.ConcludedGoal != nil {
			fields.Add("concluded_goal", "Sets and reps exercises track concluded_sets")
			break
		}
		if req.ConcludedSets == nil {
			if required {
				fields.Add("concluded_sets", "Concluded sets are required")
			}
			break
		}
		sets, reps := scheme.Apply(*req.ConcludedSets)
		stats.ConcludedSets, stats.ConcludedReps = &sets, &reps
	}
	if !fields.Empty() {
		return appErrors.NewValidation(fields)
	}
	return nil
}

func isComplete(stats *models.ExerciseStats) bool {
	switch scheme := stats.Scheme().(type) {
	case models.Goal:
		return stats.ConcludedGoal != nil && scheme.Complete(*stats.ConcludedGoal)
	case models.SetsReps:
		return stats.ConcludedSets != nil && scheme.Complete(*stats.ConcludedSets)
	}
	return false
}
