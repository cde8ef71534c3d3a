package dto

// MetricRequest creates or replaces a metric definition. ids_metrics keeps slot
// order; zero entries are empty slots and are ignored.
type MetricRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CoachID     int64   `json:"id_coach"`
	SportID     int64   `json:"id_sport"`
	Aggregated  bool    `json:"aggregated"`
	FormulaID   *int64  `json:"id_formula"`
	Components  []int64 `json:"ids_metrics"`
	CreatedBy   string  `json:"created_by"`
	UpdatedBy   string  `json:"updated_by"`
}

// SelectableQuery asks which metrics may fill one component slot.
type SelectableQuery struct {
	CoachID   int64   `form:"id_coach"`
	SportID   int64   `form:"id_sport"`
	FormulaID int64   `form:"id_formula"`
	Chosen    []int64 `form:"chosen"`
	Slot      int     `form:"slot"`
	ExcludeID int64   `form:"exclude_id"`
}

// SlotOption is a metric offered for a component slot.
type SlotOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SelectableResponse lists the options for one slot and the slot controls.
type SelectableResponse struct {
	Slot      int          `json:"slot"`
	Slots     int          `json:"slots"`
	CanAdd    bool         `json:"can_add"`
	CanRemove bool         `json:"can_remove"`
	Options   []SlotOption `json:"options"`
}

// AssignMetricRequest attaches a metric to an athlete.
type AssignMetricRequest struct {
	MetricID  int64    `json:"id_metric" validate:"required,gt=0"`
	AthleteID int64    `json:"id_athlete" validate:"required,gt=0"`
	Value     *float64 `json:"value"`
	CreatedBy string   `json:"created_by"`
}

// EditMetricValueRequest overwrites an assignment value.
type EditMetricValueRequest struct {
	Value     *float64 `json:"value" validate:"required"`
	UpdatedBy string   `json:"updated_by"`
}

// AdjustMetricValueRequest moves an assignment value by a step. Step defaults to 1.
type AdjustMetricValueRequest struct {
	Step      *float64 `json:"step" validate:"omitempty,gt=0"`
	UpdatedBy string   `json:"updated_by"`
}

// Metric kinds shown on the board.
const (
	MetricKindBase       = "base"
	MetricKindAggregated = "aggregated"
)

// BoardEntry is one metric on an athlete's board.
type BoardEntry struct {
	MetricID      int64    `json:"id_metric"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	FormulaID     *int64   `json:"id_formula,omitempty"`
	FormulaName   string   `json:"formula,omitempty"`
	Components    []int64  `json:"ids_metrics,omitempty"`
	AssignmentIDs []int64  `json:"assignment_ids"`
	Value         *float64 `json:"value"`
	DisplayValue  *string  `json:"display_value,omitempty"`
}

// AthleteBoard is the resolved metric dashboard of an athlete.
type AthleteBoard struct {
	AthleteID int64        `json:"id_athlete"`
	Entries   []BoardEntry `json:"entries"`
}
