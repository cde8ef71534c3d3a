package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// TeamRepository manages persistence for teams.
type TeamRepository struct {
	db *sqlx.DB
}

// NewTeamRepository constructs a TeamRepository.
func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = "t.id, t.name, t.id_coach, t.id_sport, t.photo_path, t.created_at, t.updated_at"

// List returns teams matching the filter.
func (r *TeamRepository) List(ctx context.Context, filter models.TeamFilter) ([]models.Team, int, error) {
	filter.ListFilter = filter.ListFilter.Normalize()
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.CoachID > 0 {
		args = append(args, filter.CoachID)
		conditions = append(conditions, fmt.Sprintf("t.id_coach = $%d", len(args)))
	}
	if filter.SportID > 0 {
		args = append(args, filter.SportID)
		conditions = append(conditions, fmt.Sprintf("t.id_sport = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(t.name) LIKE $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	query := fmt.Sprintf("SELECT %s FROM teams t%s ORDER BY t.name ASC LIMIT %d OFFSET %d", teamColumns, where, filter.PageSize, filter.Offset())
	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM teams t"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count teams: %w", err)
	}
	return teams, total, nil
}

// ListByAthlete returns the teams an athlete is enrolled in.
func (r *TeamRepository) ListByAthlete(ctx context.Context, athleteID int64) ([]models.Team, error) {
	query := "SELECT " + teamColumns + " FROM teams t JOIN enrollments e ON e.id_team = t.id WHERE e.id_athlete = $1 ORDER BY t.name ASC"
	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, query, athleteID); err != nil {
		return nil, fmt.Errorf("list athlete teams: %w", err)
	}
	return teams, nil
}

// FindByID fetches a team.
func (r *TeamRepository) FindByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	if err := r.db.GetContext(ctx, &team, "SELECT "+teamColumns+" FROM teams t WHERE t.id = $1", id); err != nil {
		return nil, err
	}
	return &team, nil
}

// Create inserts a team and fills its generated id.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	now := time.Now().UTC()
	team.CreatedAt, team.UpdatedAt = now, now
	const query = `INSERT INTO teams (name, id_coach, id_sport, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, team.Name, team.CoachID, team.SportID, team.CreatedAt, team.UpdatedAt).Scan(&team.ID); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// Update replaces a team's editable fields.
func (r *TeamRepository) Update(ctx context.Context, team *models.Team) error {
	team.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teams SET name = :name, id_coach = :id_coach, id_sport = :id_sport, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, team); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// Delete removes a team and, by cascade, its enrollments.
func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM teams WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}
