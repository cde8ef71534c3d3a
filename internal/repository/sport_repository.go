package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// SportRepository manages persistence for sports.
type SportRepository struct {
	db *sqlx.DB
}

// NewSportRepository constructs a SportRepository.
func NewSportRepository(db *sqlx.DB) *SportRepository {
	return &SportRepository{db: db}
}

const sportColumns = "id, name, description, photo_path, created_at, updated_at"

// List returns sports whose name matches the search term.
func (r *SportRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Sport, int, error) {
	filter = filter.Normalize()
	where, args := searchClause("name", filter.Search)

	query := fmt.Sprintf("SELECT %s FROM sports%s ORDER BY name ASC LIMIT %d OFFSET %d", sportColumns, where, filter.PageSize, filter.Offset())
	var sports []models.Sport
	if err := r.db.SelectContext(ctx, &sports, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sports: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sports"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count sports: %w", err)
	}
	return sports, total, nil
}

// FindByID fetches a sport.
func (r *SportRepository) FindByID(ctx context.Context, id int64) (*models.Sport, error) {
	var sport models.Sport
	if err := r.db.GetContext(ctx, &sport, "SELECT "+sportColumns+" FROM sports WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &sport, nil
}

// Create inserts a sport and fills its generated id.
func (r *SportRepository) Create(ctx context.Context, sport *models.Sport) error {
	now := time.Now().UTC()
	sport.CreatedAt, sport.UpdatedAt = now, now
	const query = `INSERT INTO sports (name, description, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, sport.Name, sport.Description, sport.CreatedAt, sport.UpdatedAt).Scan(&sport.ID); err != nil {
		return fmt.Errorf("create sport: %w", err)
	}
	return nil
}

// Update replaces a sport's editable fields.
func (r *SportRepository) Update(ctx context.Context, sport *models.Sport) error {
	sport.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sports SET name = :name, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, sport); err != nil {
		return fmt.Errorf("update sport: %w", err)
	}
	return nil
}

// Delete removes a sport.
func (r *SportRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sports WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete sport: %w", err)
	}
	return nil
}
