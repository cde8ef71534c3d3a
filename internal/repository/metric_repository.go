package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// MetricRepository manages metric definitions. Deleted metrics are kept with deleted_at set.
type MetricRepository struct {
	db *sqlx.DB
}

// NewMetricRepository constructs a MetricRepository.
func NewMetricRepository(db *sqlx.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

const metricColumns = "id, name, description, id_coach, id_sport, aggregated, id_formula, ids_metrics, created_by, created_at, updated_by, updated_at"

// List returns live metrics matching the filter.
func (r *MetricRepository) List(ctx context.Context, filter models.MetricFilter) ([]models.Metric, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	if filter.CoachID > 0 {
		args = append(args, filter.CoachID)
		conditions = append(conditions, fmt.Sprintf("id_coach = $%d", len(args)))
	}
	if filter.SportID > 0 {
		args = append(args, filter.SportID)
		conditions = append(conditions, fmt.Sprintf("id_sport = $%d", len(args)))
	}
	if filter.Aggregated != nil {
		args = append(args, *filter.Aggregated)
		conditions = append(conditions, fmt.Sprintf("aggregated = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM metrics WHERE %s ORDER BY id ASC", metricColumns, strings.Join(conditions, " AND "))

	var metrics []models.Metric
	if err := r.db.SelectContext(ctx, &metrics, query, args...); err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

// FindByID fetches a live metric.
func (r *MetricRepository) FindByID(ctx context.Context, id int64) (*models.Metric, error) {
	var metric models.Metric
	if err := r.db.GetContext(ctx, &metric, "SELECT "+metricColumns+" FROM metrics WHERE id = $1 AND deleted_at IS NULL", id); err != nil {
		return nil, err
	}
	return &metric, nil
}

// FindByIDs fetches the live metrics among ids.
func (r *MetricRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Metric, error) {
	if len(ids) == 0 {
		return []models.Metric{}, nil
	}
	query := "SELECT " + metricColumns + " FROM metrics WHERE id = ANY($1) AND deleted_at IS NULL ORDER BY id ASC"
	var metrics []models.Metric
	if err := r.db.SelectContext(ctx, &metrics, query, pq.Int64Array(ids)); err != nil {
		return nil, fmt.Errorf("find metrics: %w", err)
	}
	return metrics, nil
}

// ReferencedBy returns live aggregated metrics that use id as a component.
func (r *MetricRepository) ReferencedBy(ctx context.Context, id int64) ([]models.Metric, error) {
	query := "SELECT " + metricColumns + " FROM metrics WHERE $1 = ANY(ids_metrics) AND deleted_at IS NULL ORDER BY id ASC"
	var metrics []models.Metric
	if err := r.db.SelectContext(ctx, &metrics, query, id); err != nil {
		return nil, fmt.Errorf("find metric references: %w", err)
	}
	return metrics, nil
}

// HasValues reports whether any live athlete row stores a value for the metric.
func (r *MetricRepository) HasValues(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM athlete_has_metric WHERE id_metric = $1 AND value IS NOT NULL AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check metric values: %w", err)
	}
	return exists, nil
}

// Create inserts a metric and fills its generated id.
func (r *MetricRepository) Create(ctx context.Context, metric *models.Metric) error {
	metric.CreatedAt = time.Now().UTC()
	if metric.Components == nil {
		metric.Components = pq.Int64Array{}
	}
	const query = `INSERT INTO metrics (name, description, id_coach, id_sport, aggregated, id_formula, ids_metrics, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		metric.Name, metric.Description, metric.CoachID, metric.SportID, metric.Aggregated,
		metric.FormulaID, metric.Components, metric.CreatedBy, metric.CreatedAt,
	).Scan(&metric.ID)
	if err != nil {
		return fmt.Errorf("create metric: %w", err)
	}
	return nil
}

// Update replaces a metric definition.
func (r *MetricRepository) Update(ctx context.Context, metric *models.Metric) error {
	now := time.Now().UTC()
	metric.UpdatedAt = &now
	if metric.Components == nil {
		metric.Components = pq.Int64Array{}
	}
	const query = `UPDATE metrics SET name = :name, description = :description, id_coach = :id_coach, id_sport = :id_sport,
        aggregated = :aggregated, id_formula = :id_formula, ids_metrics = :ids_metrics, updated_by = :updated_by, updated_at = :updated_at
        WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, metric); err != nil {
		return fmt.Errorf("update metric: %w", err)
	}
	return nil
}

// SoftDelete marks a metric and its athlete assignments deleted.
func (r *MetricRepository) SoftDelete(ctx context.Context, id int64, actor string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete metric: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, "UPDATE metrics SET deleted_at = $1, deleted_by = $2 WHERE id = $3 AND deleted_at IS NULL", now, actor, id); err != nil {
		return fmt.Errorf("delete metric: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "UPDATE athlete_has_metric SET deleted_at = $1, deleted_by = $2 WHERE id_metric = $3 AND deleted_at IS NULL", now, actor, id); err != nil {
		return fmt.Errorf("delete metric assignments: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete metric: %w", err)
	}
	return nil
}
