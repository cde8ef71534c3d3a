package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// ExerciseRepository manages exercises and the exercise type catalog.
type ExerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(db *sqlx.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = "id, name, description, id_type, id_sport, sets, reps, goal, photo_path, video_path, created_at, updated_at"

// List returns exercises matching the filter.
func (r *ExerciseRepository) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, int, error) {
	filter.ListFilter = filter.ListFilter.Normalize()
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.SportID > 0 {
		args = append(args, filter.SportID)
		conditions = append(conditions, fmt.Sprintf("id_sport = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	query := fmt.Sprintf("SELECT %s FROM exercises%s ORDER BY name ASC LIMIT %d OFFSET %d", exerciseColumns, where, filter.PageSize, filter.Offset())
	var exercises []models.Exercise
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list exercises: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM exercises"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count exercises: %w", err)
	}
	return exercises, total, nil
}

// FindByID fetches an exercise.
func (r *ExerciseRepository) FindByID(ctx context.Context, id int64) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.GetContext(ctx, &exercise, "SELECT "+exerciseColumns+" FROM exercises WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// Create inserts an exercise and fills its generated id.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	now := time.Now().UTC()
	exercise.CreatedAt, exercise.UpdatedAt = now, now
	const query = `INSERT INTO exercises (name, description, id_type, id_sport, sets, reps, goal, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		exercise.Name, exercise.Description, exercise.TypeID, exercise.SportID,
		exercise.Sets, exercise.Reps, exercise.Goal, exercise.CreatedAt, exercise.UpdatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// Update replaces an exercise's editable fields.
func (r *ExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	exercise.UpdatedAt = time.Now().UTC()
	const query = `UPDATE exercises SET name = :name, description = :description, id_type = :id_type, id_sport = :id_sport,
        sets = :sets, reps = :reps, goal = :goal, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, exercise); err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return nil
}

// Delete removes an exercise.
func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// SetVideoPath records the stored video key of an exercise.
func (r *ExerciseRepository) SetVideoPath(ctx context.Context, id int64, path *string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE exercises SET video_path = $1, updated_at = $2 WHERE id = $3", path, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("set exercise video: %w", err)
	}
	return nil
}

// ListTypes returns the exercise type catalog.
func (r *ExerciseRepository) ListTypes(ctx context.Context) ([]models.TypeExercise, error) {
	var types []models.TypeExercise
	if err := r.db.SelectContext(ctx, &types, "SELECT id, name FROM type_exercise ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list exercise types: %w", err)
	}
	return types, nil
}
