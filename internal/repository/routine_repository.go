package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// RoutineRepository manages routines. Deleted routines are kept with deleted_at set.
type RoutineRepository struct {
	db *sqlx.DB
}

// NewRoutineRepository constructs a RoutineRepository.
func NewRoutineRepository(db *sqlx.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

const routineColumns = "id, name, id_athlete, created_by, created_at"

// List returns live routines, optionally limited to one athlete.
func (r *RoutineRepository) List(ctx context.Context, athleteID int64) ([]models.Routine, error) {
	query := "SELECT " + routineColumns + " FROM routines WHERE deleted_at IS NULL"
	args := []interface{}{}
	if athleteID > 0 {
		query += " AND id_athlete = $1"
		args = append(args, athleteID)
	}
	query += " ORDER BY id ASC"

	var routines []models.Routine
	if err := r.db.SelectContext(ctx, &routines, query, args...); err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return routines, nil
}

// FindByID fetches a live routine.
func (r *RoutineRepository) FindByID(ctx context.Context, id int64) (*models.Routine, error) {
	var routine models.Routine
	if err := r.db.GetContext(ctx, &routine, "SELECT "+routineColumns+" FROM routines WHERE id = $1 AND deleted_at IS NULL", id); err != nil {
		return nil, err
	}
	return &routine, nil
}

// Create inserts a routine and fills its generated id.
func (r *RoutineRepository) Create(ctx context.Context, routine *models.Routine) error {
	routine.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO routines (name, id_athlete, created_by, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, routine.Name, routine.AthleteID, routine.CreatedBy, routine.CreatedAt).Scan(&routine.ID); err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	return nil
}

// Rename changes a routine's name.
func (r *RoutineRepository) Rename(ctx context.Context, id int64, name string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE routines SET name = $1 WHERE id = $2 AND deleted_at IS NULL", name, id); err != nil {
		return fmt.Errorf("rename routine: %w", err)
	}
	return nil
}

// SoftDelete marks a routine and its scheduled exercises deleted.
func (r *RoutineRepository) SoftDelete(ctx context.Context, id int64, actor string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete routine: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, "UPDATE routines SET deleted_at = $1, deleted_by = $2 WHERE id = $3 AND deleted_at IS NULL", now, actor, id); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "UPDATE routine_has_exercise SET deleted_at = $1, deleted_by = $2 WHERE id_routine = $3 AND deleted_at IS NULL", now, actor, id); err != nil {
		return fmt.Errorf("delete routine exercises: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete routine: %w", err)
	}
	return nil
}
