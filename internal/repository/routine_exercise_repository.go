package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// RoutineExerciseRepository manages scheduled exercises and their excluded dates.
type RoutineExerciseRepository struct {
	db *sqlx.DB
}

// NewRoutineExerciseRepository constructs a RoutineExerciseRepository.
func NewRoutineExerciseRepository(db *sqlx.DB) *RoutineExerciseRepository {
	return &RoutineExerciseRepository{db: db}
}

const scheduledSelect = `SELECT rhe.id, rhe.id_routine, rhe.id_exercise, rhe.days_of_week, rhe.start_hour, rhe.end_hour, rhe.created_by, rhe.created_at,
        r.name AS routine_name, r.id_athlete, e.name AS exercise_name, e.id_type, e.sets, e.reps, e.goal, e.photo_path
        FROM routine_has_exercise rhe
        JOIN routines r ON r.id = rhe.id_routine AND r.deleted_at IS NULL
        JOIN exercises e ON e.id = rhe.id_exercise
        WHERE rhe.deleted_at IS NULL`

// ListByRoutine returns the live scheduled exercises of a routine.
func (r *RoutineExerciseRepository) ListByRoutine(ctx context.Context, routineID int64) ([]models.ScheduledExercise, error) {
	var items []models.ScheduledExercise
	if err := r.db.SelectContext(ctx, &items, scheduledSelect+" AND rhe.id_routine = $1 ORDER BY rhe.start_hour ASC", routineID); err != nil {
		return nil, fmt.Errorf("list routine exercises: %w", err)
	}
	return items, nil
}

// ListByAthlete returns the live scheduled exercises across an athlete's routines.
func (r *RoutineExerciseRepository) ListByAthlete(ctx context.Context, athleteID int64) ([]models.ScheduledExercise, error) {
	var items []models.ScheduledExercise
	if err := r.db.SelectContext(ctx, &items, scheduledSelect+" AND r.id_athlete = $1 ORDER BY rhe.start_hour ASC", athleteID); err != nil {
		return nil, fmt.Errorf("list athlete routine exercises: %w", err)
	}
	return items, nil
}

// FindByID fetches a live scheduled exercise.
func (r *RoutineExerciseRepository) FindByID(ctx context.Context, id int64) (*models.ScheduledExercise, error) {
	var item models.ScheduledExercise
	if err := r.db.GetContext(ctx, &item, scheduledSelect+" AND rhe.id = $1", id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create schedules an exercise in a single insert.
func (r *RoutineExerciseRepository) Create(ctx context.Context, item *models.RoutineExercise) error {
	item.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO routine_has_exercise (id_routine, id_exercise, days_of_week, start_hour, end_hour, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		item.RoutineID, item.ExerciseID, item.DaysOfWeek, item.Start, item.End, item.CreatedBy, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create routine exercise: %w", err)
	}
	return nil
}

// SoftDelete marks a scheduled exercise deleted.
func (r *RoutineExerciseRepository) SoftDelete(ctx context.Context, id int64, actor string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE routine_has_exercise SET deleted_at = $1, deleted_by = $2 WHERE id = $3 AND deleted_at IS NULL", time.Now().UTC(), actor, id); err != nil {
		return fmt.Errorf("delete routine exercise: %w", err)
	}
	return nil
}

const excludedDateColumns = "id, id_routine_has_exercise, excluded_date, reason, created_at"

// ExcludedDates returns the excluded dates of the given scheduled exercises.
func (r *RoutineExerciseRepository) ExcludedDates(ctx context.Context, routineExerciseIDs []int64) ([]models.ExcludedDate, error) {
	if len(routineExerciseIDs) == 0 {
		return []models.ExcludedDate{}, nil
	}
	query := "SELECT " + excludedDateColumns + " FROM routine_exercise_excluded_dates WHERE id_routine_has_exercise = ANY($1) ORDER BY excluded_date ASC"
	var dates []models.ExcludedDate
	if err := r.db.SelectContext(ctx, &dates, query, pq.Int64Array(routineExerciseIDs)); err != nil {
		return nil, fmt.Errorf("list excluded dates: %w", err)
	}
	return dates, nil
}

// FindExcludedDate fetches one excluded date.
func (r *RoutineExerciseRepository) FindExcludedDate(ctx context.Context, id int64) (*models.ExcludedDate, error) {
	var date models.ExcludedDate
	if err := r.db.GetContext(ctx, &date, "SELECT "+excludedDateColumns+" FROM routine_exercise_excluded_dates WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &date, nil
}

// AddExcludedDate inserts an excluded date. Duplicates fail with a unique violation.
func (r *RoutineExerciseRepository) AddExcludedDate(ctx context.Context, date *models.ExcludedDate) error {
	date.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO routine_exercise_excluded_dates (id_routine_has_exercise, excluded_date, reason, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, date.RoutineExerciseID, date.Date, date.Reason, date.CreatedAt).Scan(&date.ID); err != nil {
		return fmt.Errorf("create excluded date: %w", err)
	}
	return nil
}

// DeleteExcludedDate removes an excluded date.
func (r *RoutineExerciseRepository) DeleteExcludedDate(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM routine_exercise_excluded_dates WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete excluded date: %w", err)
	}
	return nil
}
