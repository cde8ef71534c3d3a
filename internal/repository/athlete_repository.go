package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// AthleteRepository manages persistence for athletes.
type AthleteRepository struct {
	db *sqlx.DB
}

// NewAthleteRepository constructs an AthleteRepository.
func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

const athleteColumns = "a.id, a.name, a.email, a.birth_date, a.photo_path, a.created_at, a.updated_at"

// List returns athletes whose name matches the search term.
func (r *AthleteRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Athlete, int, error) {
	filter = filter.Normalize()
	where, args := searchClause("a.name", filter.Search)

	query := fmt.Sprintf("SELECT %s FROM athletes a%s ORDER BY a.name ASC LIMIT %d OFFSET %d", athleteColumns, where, filter.PageSize, filter.Offset())
	var athletes []models.Athlete
	if err := r.db.SelectContext(ctx, &athletes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list athletes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM athletes a"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count athletes: %w", err)
	}
	return athletes, total, nil
}

// ListByTeam returns the athletes enrolled in a team.
func (r *AthleteRepository) ListByTeam(ctx context.Context, teamID int64) ([]models.Athlete, error) {
	query := "SELECT " + athleteColumns + " FROM athletes a JOIN enrollments e ON e.id_athlete = a.id WHERE e.id_team = $1 ORDER BY a.name ASC"
	var athletes []models.Athlete
	if err := r.db.SelectContext(ctx, &athletes, query, teamID); err != nil {
		return nil, fmt.Errorf("list team athletes: %w", err)
	}
	return athletes, nil
}

// FindByID fetches an athlete.
func (r *AthleteRepository) FindByID(ctx context.Context, id int64) (*models.Athlete, error) {
	var athlete models.Athlete
	if err := r.db.GetContext(ctx, &athlete, "SELECT "+athleteColumns+" FROM athletes a WHERE a.id = $1", id); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Create inserts an athlete and fills its generated id.
func (r *AthleteRepository) Create(ctx context.Context, athlete *models.Athlete) error {
	now := time.Now().UTC()
	athlete.CreatedAt, athlete.UpdatedAt = now, now
	const query = `INSERT INTO athletes (name, email, birth_date, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, athlete.Name, athlete.Email, athlete.BirthDate, athlete.CreatedAt, athlete.UpdatedAt).Scan(&athlete.ID); err != nil {
		return fmt.Errorf("create athlete: %w", err)
	}
	return nil
}

// Update replaces an athlete's editable fields.
func (r *AthleteRepository) Update(ctx context.Context, athlete *models.Athlete) error {
	athlete.UpdatedAt = time.Now().UTC()
	const query = `UPDATE athletes SET name = :name, email = :email, birth_date = :birth_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, athlete); err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	return nil
}

// Delete removes an athlete.
func (r *AthleteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM athletes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete athlete: %w", err)
	}
	return nil
}
