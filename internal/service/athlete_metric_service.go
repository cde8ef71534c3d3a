package service

import (
	"context"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/aggregate"
	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type athleteMetricRepository interface {
	List(ctx context.Context, filter models.AthleteMetricFilter) ([]models.AthleteMetric, error)
	ListByAthlete(ctx context.Context, athleteID int64) ([]models.AthleteMetric, error)
	FindByID(ctx context.Context, id int64) (*models.AthleteMetric, error)
	Create(ctx context.Context, row *models.AthleteMetric) error
	UpdateValue(ctx context.Context, row *models.AthleteMetric) error
	AddDelta(ctx context.Context, id int64, delta float64, actor string) (*models.AthleteMetric, error)
	SoftDelete(ctx context.Context, id int64, actor string) error
}

type metricReader interface {
	FindByID(ctx context.Context, id int64) (*models.Metric, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Metric, error)
}

type formulaIndex interface {
	ByID(ctx context.Context) (map[int64]models.Formula, error)
}

// AthleteMetricService manages metric values assigned to athletes and resolves
// the per-athlete board.
type AthleteMetricService struct {
	repo      athleteMetricRepository
	metrics   metricReader
	athletes  athleteReader
	formulas  formulaIndex
	cache     *CacheService
	telemetry *TelemetryService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAthleteMetricService constructs the athlete metric service.
func NewAthleteMetricService(repo athleteMetricRepository, metrics metricReader, athletes athleteReader, formulas formulaIndex, cache *CacheService, telemetry *TelemetryService, validate *validator.Validate, logger *zap.Logger) *AthleteMetricService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AthleteMetricService{
		repo:      repo,
		metrics:   metrics,
		athletes:  athletes,
		formulas:  formulas,
		cache:     cache,
		telemetry: telemetry,
		validator: validate,
		logger:    logger,
	}
}

// List returns assignment rows, optionally for one athlete or metric.
func (s *AthleteMetricService) List(ctx context.Context, filter models.AthleteMetricFilter) ([]models.AthleteMetric, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list athlete metrics")
	}
	return rows, nil
}

// Get returns one assignment row.
func (s *AthleteMetricService) Get(ctx context.Context, id int64) (*models.AthleteMetric, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "athlete metric")
	}
	return row, nil
}

// Assign attaches a metric to an athlete. Base metrics take an optional
// non-negative value; aggregated metrics are computed and take none.
func (s *AthleteMetricService) Assign(ctx context.Context, req dto.AssignMetricRequest, actor string) (*models.AthleteMetric, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid athlete metric payload")
	}
	if _, err := s.athletes.FindByID(ctx, req.AthleteID); err != nil {
		return nil, loadError(err, "athlete")
	}
	metric, err := s.metrics.FindByID(ctx, req.MetricID)
	if err != nil {
		return nil, loadError(err, "metric")
	}

	fields := appErrors.FieldErrors{}
	if metric.Aggregated {
		if req.Value != nil {
			fields.Add("value", "Aggregated metric values are computed and cannot be set")
		}
	} else if req.Value != nil {
		checkValue(fields, *req.Value)
	}
	if !fields.Empty() {
		return nil, appErrors.NewValidation(fields)
	}

	row := &models.AthleteMetric{
		MetricID:  req.MetricID,
		AthleteID: req.AthleteID,
		Value:     req.Value,
		CreatedBy: actorOr(req.CreatedBy, actor),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, writeError(err, "failed to assign metric", "", "athlete or metric does not exist")
	}
	s.cache.InvalidateBoard(ctx, row.AthleteID)
	return row, nil
}

// Increment raises a base value by step.
func (s *AthleteMetricService) Increment(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error) {
	return s.adjust(ctx, id, req, actor, 1)
}

// Decrement lowers a base value by step, never below zero.
func (s *AthleteMetricService) Decrement(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string) (*models.AthleteMetric, error) {
	return s.adjust(ctx, id, req, actor, -1)
}

func (s *AthleteMetricService) adjust(ctx context.Context, id int64, req dto.AdjustMetricValueRequest, actor string, sign float64) (*models.AthleteMetric, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid step")
	}
	row, err := s.editableRow(ctx, id)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if req.Step != nil {
		step = *req.Step
	}
	if math.IsInf(step, 0) || math.IsNaN(step) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Step must be a finite number")
	}

	updated, err := s.repo.AddDelta(ctx, id, sign*step, actorOr(req.UpdatedBy, actor))
	if err != nil {
		return nil, loadError(err, "athlete metric")
	}
	s.cache.InvalidateBoard(ctx, row.AthleteID)
	return updated, nil
}

// Edit overwrites a base value.
func (s *AthleteMetricService) Edit(ctx context.Context, id int64, req dto.EditMetricValueRequest, actor string) (*models.AthleteMetric, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid athlete metric payload")
	}
	fields := appErrors.FieldErrors{}
	checkValue(fields, *req.Value)
	if !fields.Empty() {
		return nil, appErrors.NewValidation(fields)
	}
	row, err := s.editableRow(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedBy := actorOr(req.UpdatedBy, actor)
	row.Value, row.UpdatedBy = req.Value, &updatedBy
	if err := s.repo.UpdateValue(ctx, row); err != nil {
		return nil, loadError(err, "athlete metric")
	}
	s.cache.InvalidateBoard(ctx, row.AthleteID)
	return row, nil
}

// Delete soft-deletes an assignment row.
func (s *AthleteMetricService) Delete(ctx context.Context, id int64, actor string) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, actor); err != nil {
		return internalError(err, "failed to delete athlete metric")
	}
	s.cache.InvalidateBoard(ctx, row.AthleteID)
	return nil
}

// Board resolves the athlete's metrics, serving from cache when possible. The
// second return value reports a cache hit.
func (s *AthleteMetricService) Board(ctx context.Context, athleteID int64) (*dto.AthleteBoard, bool, error) {
	key := BoardCacheKey(athleteID)
	var cached dto.AthleteBoard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	if _, err := s.athletes.FindByID(ctx, athleteID); err != nil {
		return nil, false, loadError(err, "athlete")
	}
	start := time.Now()
	board, err := s.resolve(ctx, athleteID)
	if err != nil {
		return nil, false, err
	}
	s.telemetry.ObserveBoardResolve(time.Since(start))
	s.cache.Set(ctx, key, board, 0)
	return board, false, nil
}

func (s *AthleteMetricService) resolve(ctx context.Context, athleteID int64) (*dto.AthleteBoard, error) {
	rows, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, internalError(err, "failed to list athlete metrics")
	}
	board := &dto.AthleteBoard{AthleteID: athleteID, Entries: []dto.BoardEntry{}}
	if len(rows) == 0 {
		return board, nil
	}

	assignments := make([]aggregate.Assignment, 0, len(rows))
	rowIDs := make(map[int64][]int64)
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.Assignment())
		if _, seen := rowIDs[row.MetricID]; !seen {
			ids = append(ids, row.MetricID)
		}
		rowIDs[row.MetricID] = append(rowIDs[row.MetricID], row.ID)
	}

	found, err := s.metrics.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internalError(err, "failed to load metrics")
	}
	metrics := make(map[int64]models.Metric, len(found))
	rules := make(map[int64]aggregate.Metric, len(found))
	for _, m := range found {
		metrics[m.ID] = m
		rules[m.ID] = m.Rule()
	}
	catalog, err := s.formulas.ByID(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load formulas")
	}
	formulas := make(map[int64]aggregate.Formula, len(catalog))
	for id, f := range catalog {
		formulas[id] = f.Rule()
	}

	for _, entry := range aggregate.Board(assignments, rules, formulas) {
		m := metrics[entry.MetricID]
		out := dto.BoardEntry{
			MetricID:      m.ID,
			Name:          m.Name,
			Kind:          dto.MetricKindBase,
			AssignmentIDs: rowIDs[m.ID],
			Value:         entry.Value,
		}
		if entry.Aggregated {
			out.Kind = dto.MetricKindAggregated
			out.FormulaID = m.FormulaID
			out.Components = []int64(m.Components)
			out.DisplayValue = aggregate.FormatValue(entry.Value)
			if m.FormulaID != nil {
				out.FormulaName = catalog[*m.FormulaID].Name
			}
		}
		board.Entries = append(board.Entries, out)
	}
	return board, nil
}

// editableRow loads a row whose metric accepts direct values.
func (s *AthleteMetricService) editableRow(ctx context.Context, id int64) (*models.AthleteMetric, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	metric, err := s.metrics.FindByID(ctx, row.MetricID)
	if err != nil {
		return nil, loadError(err, "metric")
	}
	if metric.Aggregated {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Aggregated metric values are computed and cannot be edited")
	}
	return row, nil
}

func checkValue(fields appErrors.FieldErrors, v float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		fields.Add("value", "Value must be a finite number")
	case v < 0:
		fields.Add("value", "Value cannot be negative")
	}
}
