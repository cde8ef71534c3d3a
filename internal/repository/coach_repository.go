package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// CoachRepository manages persistence for coaches.
type CoachRepository struct {
	db *sqlx.DB
}

// NewCoachRepository constructs a CoachRepository.
func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

const coachColumns = "id, name, id_level, photo_path, created_at, updated_at"

// List returns coaches whose name matches the search term.
func (r *CoachRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Coach, int, error) {
	filter = filter.Normalize()
	where, args := searchClause("name", filter.Search)

	query := fmt.Sprintf("SELECT %s FROM coaches%s ORDER BY name ASC LIMIT %d OFFSET %d", coachColumns, where, filter.PageSize, filter.Offset())
	var coaches []models.Coach
	if err := r.db.SelectContext(ctx, &coaches, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list coaches: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM coaches"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count coaches: %w", err)
	}
	return coaches, total, nil
}

// FindByID fetches a coach.
func (r *CoachRepository) FindByID(ctx context.Context, id int64) (*models.Coach, error) {
	var coach models.Coach
	if err := r.db.GetContext(ctx, &coach, "SELECT "+coachColumns+" FROM coaches WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &coach, nil
}

// Create inserts a coach and fills its generated id.
func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	now := time.Now().UTC()
	coach.CreatedAt, coach.UpdatedAt = now, now
	const query = `INSERT INTO coaches (name, id_level, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, coach.Name, coach.LevelID, coach.CreatedAt, coach.UpdatedAt).Scan(&coach.ID); err != nil {
		return fmt.Errorf("create coach: %w", err)
	}
	return nil
}

// Update replaces a coach's editable fields.
func (r *CoachRepository) Update(ctx context.Context, coach *models.Coach) error {
	coach.UpdatedAt = time.Now().UTC()
	const query = `UPDATE coaches SET name = :name, id_level = :id_level, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, coach); err != nil {
		return fmt.Errorf("update coach: %w", err)
	}
	return nil
}

// Delete removes a coach.
func (r *CoachRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM coaches WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete coach: %w", err)
	}
	return nil
}

// searchClause builds a case-insensitive LIKE filter on column when term is set.
func searchClause(column, term string) (string, []interface{}) {
	if term == "" {
		return "", nil
	}
	return fmt.Sprintf(" WHERE LOWER(%s) LIKE $1", column), []interface{}{"%" + strings.ToLower(term) + "%"}
}
