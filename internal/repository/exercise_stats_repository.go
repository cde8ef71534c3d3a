package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// ErrHistoryNotInProgress reports a progress or end write that lost the race
// against another transition of the same execution.
var ErrHistoryNotInProgress = errors.New("exercise history is not in progress")

// ExerciseStatsRepository persists live execution progress and history.
type ExerciseStatsRepository struct {
	db *sqlx.DB
}

// NewExerciseStatsRepository constructs an ExerciseStatsRepository.
func NewExerciseStatsRepository(db *sqlx.DB) *ExerciseStatsRepository {
	return &ExerciseStatsRepository{db: db}
}

const (
	statsColumns   = "id, sets, reps, goal, concluded_sets, concluded_reps, concluded_goal, start_date, end_date"
	historyColumns = "id, id_exercise_stats, id_routine_has_exercise, status, performed_on, created_by, created_at, updated_by, updated_at"
)

// LatestHistoryBetween returns the newest live history rows created in [from, to)
// for each of the given scheduled exercises.
func (r *ExerciseStatsRepository) LatestHistoryBetween(ctx context.Context, routineExerciseIDs []int64, from, to time.Time) ([]models.ExerciseHistory, error) {
	if len(routineExerciseIDs) == 0 {
		return []models.ExerciseHistory{}, nil
	}
	query := `SELECT DISTINCT ON (id_routine_has_exercise) ` + historyColumns + `
        FROM exercise_history
        WHERE id_routine_has_exercise = ANY($1) AND created_at >= $2 AND created_at < $3 AND deleted_at IS NULL
        ORDER BY id_routine_has_exercise, created_at DESC, id DESC`
	var rows []models.ExerciseHistory
	if err := r.db.SelectContext(ctx, &rows, query, pq.Int64Array(routineExerciseIDs), from, to); err != nil {
		return nil, fmt.Errorf("list exercise history: %w", err)
	}
	return rows, nil
}

// ListHistory returns the live history of a scheduled exercise, newest first.
func (r *ExerciseStatsRepository) ListHistory(ctx context.Context, routineExerciseID int64) ([]models.ExerciseHistory, error) {
	query := "SELECT " + historyColumns + " FROM exercise_history WHERE id_routine_has_exercise = $1 AND deleted_at IS NULL ORDER BY created_at DESC, id DESC"
	var rows []models.ExerciseHistory
	if err := r.db.SelectContext(ctx, &rows, query, routineExerciseID); err != nil {
		return nil, fmt.Errorf("list exercise history: %w", err)
	}
	return rows, nil
}

// FindHistory fetches a live history row.
func (r *ExerciseStatsRepository) FindHistory(ctx context.Context, id int64) (*models.ExerciseHistory, error) {
	var row models.ExerciseHistory
	if err := r.db.GetContext(ctx, &row, "SELECT "+historyColumns+" FROM exercise_history WHERE id = $1 AND deleted_at IS NULL", id); err != nil {
		return nil, err
	}
	return &row, nil
}

// FindHistoryByStats fetches the live history row that owns a stats row.
func (r *ExerciseStatsRepository) FindHistoryByStats(ctx context.Context, statsID int64) (*models.ExerciseHistory, error) {
	var row models.ExerciseHistory
	if err := r.db.GetContext(ctx, &row, "SELECT "+historyColumns+" FROM exercise_history WHERE id_exercise_stats = $1 AND deleted_at IS NULL", statsID); err != nil {
		return nil, err
	}
	return &row, nil
}

// FindStats fetches a stats row.
func (r *ExerciseStatsRepository) FindStats(ctx context.Context, id int64) (*models.ExerciseStats, error) {
	var stats models.ExerciseStats
	if err := r.db.GetContext(ctx, &stats, "SELECT "+statsColumns+" FROM exercise_stats WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindStatsByIDs fetches the stats rows among ids.
func (r *ExerciseStatsRepository) FindStatsByIDs(ctx context.Context, ids []int64) ([]models.ExerciseStats, error) {
	if len(ids) == 0 {
		return []models.ExerciseStats{}, nil
	}
	var stats []models.ExerciseStats
	if err := r.db.SelectContext(ctx, &stats, "SELECT "+statsColumns+" FROM exercise_stats WHERE id = ANY($1)", pq.Int64Array(ids)); err != nil {
		return nil, fmt.Errorf("list exercise stats: %w", err)
	}
	return stats, nil
}

// Start creates the stats row and its IN PROGRESS history row together.
func (r *ExerciseStatsRepository) Start(ctx context.Context, stats *models.ExerciseStats, history *models.ExerciseHistory) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin start exercise: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertStats = `INSERT INTO exercise_stats (sets, reps, goal, concluded_sets, concluded_reps, concluded_goal, start_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowxContext(ctx, insertStats,
		stats.Sets, stats.Reps, stats.Goal, stats.ConcludedSets, stats.ConcludedReps, stats.ConcludedGoal, stats.StartDate,
	).Scan(&stats.ID)
	if err != nil {
		return fmt.Errorf("create exercise stats: %w", err)
	}

	history.StatsID = stats.ID
	const insertHistory = `INSERT INTO exercise_history (id_exercise_stats, id_routine_has_exercise, status, performed_on, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowxContext(ctx, insertHistory,
		history.StatsID, history.RoutineExerciseID, history.Status, history.PerformedOn, history.CreatedBy, history.CreatedAt,
	).Scan(&history.ID)
	if err != nil {
		return fmt.Errorf("create exercise history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit start exercise: %w", err)
	}
	return nil
}

// UpdateProgress stores the concluded values of a stats row while its history
// is still IN PROGRESS.
func (r *ExerciseStatsRepository) UpdateProgress(ctx context.Context, stats *models.ExerciseStats) error {
	const query = `UPDATE exercise_stats s SET concluded_sets = $1, concluded_reps = $2, concluded_goal = $3
        FROM exercise_history h
        WHERE s.id = $4 AND h.id_exercise_stats = s.id AND h.status = $5 AND h.deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, stats.ConcludedSets, stats.ConcludedReps, stats.ConcludedGoal, stats.ID, models.StatusInProgress)
	if err != nil {
		return fmt.Errorf("update exercise stats: %w", err)
	}
	return requireAffected(res)
}

// Complete marks the history COMPLETED and stores the final progress and end
// date. The history must still be IN PROGRESS.
func (r *ExerciseStatsRepository) Complete(ctx context.Context, stats *models.ExerciseStats, history *models.ExerciseHistory) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin end exercise: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const updateHistory = `UPDATE exercise_history SET status = $1, updated_by = $2, updated_at = $3
        WHERE id = $4 AND status = $5 AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, updateHistory, history.Status, history.UpdatedBy, history.UpdatedAt, history.ID, models.StatusInProgress)
	if err != nil {
		return fmt.Errorf("update exercise history: %w", err)
	}
	if err = requireAffected(res); err != nil {
		return err
	}
	const updateStats = `UPDATE exercise_stats SET concluded_sets = :concluded_sets, concluded_reps = :concluded_reps,
        concluded_goal = :concluded_goal, end_date = :end_date WHERE id = :id`
	if _, err = tx.NamedExecContext(ctx, updateStats, stats); err != nil {
		return fmt.Errorf("update exercise stats: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit end exercise: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrHistoryNotInProgress
	}
	return nil
}

// SoftDeleteHistory marks a history row deleted.
func (r *ExerciseStatsRepository) SoftDeleteHistory(ctx context.Context, id int64, actor string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE exercise_history SET deleted_at = $1, deleted_by = $2 WHERE id = $3 AND deleted_at IS NULL", time.Now().UTC(), actor, id); err != nil {
		return fmt.Errorf("delete exercise history: %w", err)
	}
	return nil
}
