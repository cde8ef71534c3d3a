package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/noah-isme/teamfit-api/internal/aggregate"
)

// Formula is a catalog entry describing how aggregated metrics are computed.
type Formula struct {
	ID           int64          `db:"id" json:"id" yaml:"id"`
	Code         aggregate.Code `db:"code" json:"code" yaml:"code"`
	Name         string         `db:"name" json:"name" yaml:"name"`
	Description  *string        `db:"description" json:"description,omitempty" yaml:"description,omitempty"`
	MaxArguments int            `db:"max_arguments" json:"max_arguments" yaml:"max_arguments"`
}

// Rule returns the arity contract of the formula.
func (f Formula) Rule() aggregate.Formula {
	return aggregate.Formula{ID: f.ID, Code: f.Code, MaxArguments: f.MaxArguments}
}

// Metric is a tracked quantity, either assigned directly or aggregated from components.
type Metric struct {
	ID          int64         `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description *string       `db:"description" json:"description,omitempty"`
	CoachID     int64         `db:"id_coach" json:"id_coach"`
	SportID     int64         `db:"id_sport" json:"id_sport"`
	Aggregated  bool          `db:"aggregated" json:"aggregated"`
	FormulaID   *int64        `db:"id_formula" json:"id_formula"`
	Components  pq.Int64Array `db:"ids_metrics" json:"ids_metrics"`
	CreatedBy   string        `db:"created_by" json:"created_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedBy   *string       `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt   *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}

// Rule returns the definition used by the aggregation rules.
func (m Metric) Rule() aggregate.Metric {
	components := make([]int64, len(m.Components))
	copy(components, m.Components)
	return aggregate.Metric{
		ID:         m.ID,
		Name:       m.Name,
		Aggregated: m.Aggregated,
		FormulaID:  m.FormulaID,
		Components: components,
	}
}

// MetricFilter narrows metric listings.
type MetricFilter struct {
	CoachID    int64
	SportID    int64
	Aggregated *bool
}

// AthleteMetricFilter narrows assignment listings.
type AthleteMetricFilter struct {
	AthleteID int64
	MetricID  int64
}

// AthleteMetric is one value row of a metric assigned to an athlete.
// Value is nil for aggregated metrics, which are computed.
type AthleteMetric struct {
	ID        int64      `db:"id" json:"id"`
	MetricID  int64      `db:"id_metric" json:"id_metric"`
	AthleteID int64      `db:"id_athlete" json:"id_athlete"`
	Value     *float64   `db:"value" json:"value"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedBy *string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Assignment converts the row for board resolution.
func (a AthleteMetric) Assignment() aggregate.Assignment {
	return aggregate.Assignment{MetricID: a.MetricID, Value: a.Value}
}
