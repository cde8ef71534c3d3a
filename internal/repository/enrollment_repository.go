package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentSelect = `SELECT e.id, e.id_team, e.id_athlete, e.created_at, t.name AS team_name, a.name AS athlete_name
FROM enrollments e
JOIN teams t ON t.id = e.id_team
JOIN athletes a ON a.id = e.id_athlete`

// List returns enrollments filtered by team and/or athlete.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	var conditions []string
	var args []interface{}
	if filter.TeamID > 0 {
		conditions = append(conditions, fmt.Sprintf("e.id_team = $%d", len(args)+1))
		args = append(args, filter.TeamID)
	}
	if filter.AthleteID > 0 {
		conditions = append(conditions, fmt.Sprintf("e.id_athlete = $%d", len(args)+1))
		args = append(args, filter.AthleteID)
	}
	query := enrollmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.id ASC"

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID fetches an enrollment with display names.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	var enrollment models.EnrollmentDetail
	if err := r.db.GetContext(ctx, &enrollment, enrollmentSelect+" WHERE e.id = $1", id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Exists reports whether the athlete is already on the team.
func (r *EnrollmentRepository) Exists(ctx context.Context, teamID, athleteID int64) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM enrollments WHERE id_team = $1 AND id_athlete = $2 LIMIT 1", teamID, athleteID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create inserts an enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO enrollments (id_team, id_athlete, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, enrollment.TeamID, enrollment.AthleteID, enrollment.CreatedAt).Scan(&enrollment.ID); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM enrollments WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
