package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// AthleteMetricRepository manages metric value rows assigned to athletes.
type AthleteMetricRepository struct {
	db *sqlx.DB
}

// NewAthleteMetricRepository constructs an AthleteMetricRepository.
func NewAthleteMetricRepository(db *sqlx.DB) *AthleteMetricRepository {
	return &AthleteMetricRepository{db: db}
}

const athleteMetricColumns = "id, id_metric, id_athlete, value, created_by, created_at, updated_by, updated_at"

// List returns live rows matching filter.
func (r *AthleteMetricRepository) List(ctx context.Context, filter models.AthleteMetricFilter) ([]models.AthleteMetric, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	if filter.AthleteID > 0 {
		args = append(args, filter.AthleteID)
		conditions = append(conditions, fmt.Sprintf("id_athlete = $%d", len(args)))
	}
	if filter.MetricID > 0 {
		args = append(args, filter.MetricID)
		conditions = append(conditions, fmt.Sprintf("id_metric = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM athlete_has_metric WHERE %s ORDER BY id ASC", athleteMetricColumns, strings.Join(conditions, " AND "))

	var rows []models.AthleteMetric
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list athlete metrics: %w", err)
	}
	return rows, nil
}

// ListByAthlete returns the live rows of an athlete.
func (r *AthleteMetricRepository) ListByAthlete(ctx context.Context, athleteID int64) ([]models.AthleteMetric, error) {
	query := "SELECT " + athleteMetricColumns + " FROM athlete_has_metric WHERE id_athlete = $1 AND deleted_at IS NULL ORDER BY id ASC"
	var rows []models.AthleteMetric
	if err := r.db.SelectContext(ctx, &rows, query, athleteID); err != nil {
		return nil, fmt.Errorf("list athlete metrics: %w", err)
	}
	return rows, nil
}

// FindByID fetches a live row.
func (r *AthleteMetricRepository) FindByID(ctx context.Context, id int64) (*models.AthleteMetric, error) {
	var row models.AthleteMetric
	if err := r.db.GetContext(ctx, &row, "SELECT "+athleteMetricColumns+" FROM athlete_has_metric WHERE id = $1 AND deleted_at IS NULL", id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a row and fills its generated id.
func (r *AthleteMetricRepository) Create(ctx context.Context, row *models.AthleteMetric) error {
	row.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO athlete_has_metric (id_metric, id_athlete, value, created_by, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, row.MetricID, row.AthleteID, row.Value, row.CreatedBy, row.CreatedAt).Scan(&row.ID); err != nil {
		return fmt.Errorf("create athlete metric: %w", err)
	}
	return nil
}

// UpdateValue overwrites the value of a row.
func (r *AthleteMetricRepository) UpdateValue(ctx context.Context, row *models.AthleteMetric) error {
	now := time.Now().UTC()
	row.UpdatedAt = &now
	const query = `UPDATE athlete_has_metric SET value = :value, updated_by = :updated_by, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("update athlete metric: %w", err)
	}
	return nil
}

// AddDelta atomically adds delta to the row value, flooring at zero, and
// returns the stored row.
func (r *AthleteMetricRepository) AddDelta(ctx context.Context, id int64, delta float64, actor string) (*models.AthleteMetric, error) {
	const query = `UPDATE athlete_has_metric SET value = GREATEST(COALESCE(value, 0) + $1, 0), updated_by = $2, updated_at = $3
        WHERE id = $4 AND deleted_at IS NULL RETURNING ` + athleteMetricColumns
	var row models.AthleteMetric
	if err := r.db.GetContext(ctx, &row, query, delta, actor, time.Now().UTC(), id); err != nil {
		return nil, err
	}
	return &row, nil
}

// SoftDelete marks a row deleted.
func (r *AthleteMetricRepository) SoftDelete(ctx context.Context, id int64, actor string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE athlete_has_metric SET deleted_at = $1, deleted_by = $2 WHERE id = $3 AND deleted_at IS NULL", time.Now().UTC(), actor, id); err != nil {
		return fmt.Errorf("delete athlete metric: %w", err)
	}
	return nil
}
