package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/aggregate"
	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type metricRepository interface {
	List(ctx context.Context, filter models.MetricFilter) ([]models.Metric, error)
	FindByID(ctx context.Context, id int64) (*models.Metric, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Metric, error)
	ReferencedBy(ctx context.Context, id int64) ([]models.Metric, error)
	HasValues(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, metric *models.Metric) error
	Update(ctx context.Context, metric *models.Metric) error
	SoftDelete(ctx context.Context, id int64, actor string) error
}

type formulaCatalog interface {
	List(ctx context.Context) ([]models.Formula, error)
	ByID(ctx context.Context) (map[int64]models.Formula, error)
	Find(ctx context.Context, id int64) (*models.Formula, bool, error)
}

// MetricService manages metric definitions and the rules of aggregated metrics.
type MetricService struct {
	repo     metricRepository
	formulas formulaCatalog
	cache    *CacheService
	logger   *zap.Logger
}

// NewMetricService constructs the metric service.
func NewMetricService(repo metricRepository, formulas formulaCatalog, cache *CacheService, logger *zap.Logger) *MetricService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricService{repo: repo, formulas: formulas, cache: cache, logger: logger}
}

// List returns live metrics.
func (s *MetricService) List(ctx context.Context, filter models.MetricFilter) ([]models.Metric, error) {
	metrics, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list metrics")
	}
	return metrics, nil
}

// Get returns one live metric.
func (s *MetricService) Get(ctx context.Context, id int64) (*models.Metric, error) {
	metric, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "metric")
	}
	return metric, nil
}

// Formulas returns the formula catalog.
func (s *MetricService) Formulas(ctx context.Context) ([]models.Formula, error) {
	formulas, err := s.formulas.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list formulas")
	}
	return formulas, nil
}

// Formula returns one catalog entry.
func (s *MetricService) Formula(ctx context.Context, id int64) (*models.Formula, error) {
	formula, ok, err := s.formulas.Find(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to load formula")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "formula not found")
	}
	return formula, nil
}

// Create validates and stores a metric definition.
func (s *MetricService) Create(ctx context.Context, req dto.MetricRequest, actor string) (*models.Metric, error) {
	metric, err := s.validate(ctx, 0, req)
	if err != nil {
		return nil, err
	}
	metric.CreatedBy = actorOr(req.CreatedBy, actor)
	if err := s.repo.Create(ctx, metric); err != nil {
		return nil, writeError(err, "failed to create metric", "", "coach or sport does not exist")
	}
	s.logger.Info("metric created", zap.Int64("metric_id", metric.ID), zap.Bool("aggregated", metric.Aggregated))
	return metric, nil
}

// Update replaces a metric definition. Every cached board is dropped because
// any athlete may show the metric or an aggregate built on it.
func (s *MetricService) Update(ctx context.Context, id int64, req dto.MetricRequest, actor string) (*models.Metric, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	metric, err := s.validate(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if metric.Aggregated && !current.Aggregated {
		users, err := s.repo.ReferencedBy(ctx, id)
		if err != nil {
			return nil, internalError(err, "failed to check metric references")
		}
		if len(users) > 0 {
			fields := appErrors.FieldErrors{}
			fields.Add("aggregated", fmt.Sprintf("Metric is a component of %q and must stay a base metric", users[0].Name))
			return nil, appErrors.NewValidation(fields)
		}
		// aggregated rows carry no stored value
		hasValues, err := s.repo.HasValues(ctx, id)
		if err != nil {
			return nil, internalError(err, "failed to check metric values")
		}
		if hasValues {
			fields := appErrors.FieldErrors{}
			fields.Add("aggregated", "Metric already has athlete values and must stay a base metric")
			return nil, appErrors.NewValidation(fields)
		}
	}

	updatedBy := actorOr(req.UpdatedBy, actor)
	metric.ID, metric.CreatedBy, metric.CreatedAt, metric.UpdatedBy = id, current.CreatedBy, current.CreatedAt, &updatedBy
	if err := s.repo.Update(ctx, metric); err != nil {
		return nil, writeError(err, "failed to update metric", "", "coach or sport does not exist")
	}
	s.cache.InvalidateBoards(ctx)
	return metric, nil
}

// Delete soft-deletes a metric that no aggregated metric uses.
func (s *MetricService) Delete(ctx context.Context, id int64, actor string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	users, err := s.repo.ReferencedBy(ctx, id)
	if err != nil {
		return internalError(err, "failed to check metric references")
	}
	if len(users) > 0 {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("metric is used by aggregated metric %q", users[0].Name))
	}
	if err := s.repo.SoftDelete(ctx, id, actor); err != nil {
		return internalError(err, "failed to delete metric")
	}
	s.cache.InvalidateBoards(ctx)
	s.logger.Info("metric deleted", zap.Int64("metric_id", id), zap.String("actor", actor))
	return nil
}

// Selectable lists the base metrics that may fill one component slot and
// reports whether slots can be added or removed for the formula.
func (s *MetricService) Selectable(ctx context.Context, q dto.SelectableQuery) (*dto.SelectableResponse, error) {
	formula, err := s.Formula(ctx, q.FormulaID)
	if err != nil {
		return nil, err
	}
	slots, err := aggregate.SlotsFrom(formula.Rule(), q.Chosen)
	if err != nil {
		fields := appErrors.FieldErrors{}
		fields.Add(aggregate.FieldComponents, fmt.Sprintf("This formula requires exactly %d metrics", formula.MaxArguments))
		return nil, appErrors.NewValidation(fields)
	}

	base := false
	candidates, err := s.repo.List(ctx, models.MetricFilter{CoachID: q.CoachID, SportID: q.SportID, Aggregated: &base})
	if err != nil {
		return nil, internalError(err, "failed to list metrics")
	}
	rules := make([]aggregate.Metric, 0, len(candidates))
	for _, m := range candidates {
		if m.ID != q.ExcludeID {
			rules = append(rules, m.Rule())
		}
	}
	options, err := slots.Options(q.Slot, rules)
	if err != nil {
		fields := appErrors.FieldErrors{}
		fields.Add("slot", "Slot index out of range")
		return nil, appErrors.NewValidation(fields)
	}

	out := &dto.SelectableResponse{
		Slot:      q.Slot,
		Slots:     slots.Len(),
		CanAdd:    slots.CanAdd(),
		CanRemove: slots.CanRemove(),
		Options:   make([]dto.SlotOption, 0, len(options)),
	}
	for _, m := range options {
		out.Options = append(out.Options, dto.SlotOption{ID: m.ID, Name: m.Name})
	}
	return out, nil
}

// validate applies the definition and component rules and returns the metric
// to persist. Base metrics are stored without formula or components.
func (s *MetricService) validate(ctx context.Context, selfID int64, req dto.MetricRequest) (*models.Metric, error) {
	def := aggregate.Definition{
		ID:         selfID,
		Name:       req.Name,
		CoachID:    req.CoachID,
		SportID:    req.SportID,
		Aggregated: req.Aggregated,
		Components: req.Components,
	}
	var rule *aggregate.Formula
	if req.Aggregated && req.FormulaID != nil && *req.FormulaID > 0 {
		def.FormulaID = *req.FormulaID
		formula, ok, err := s.formulas.Find(ctx, def.FormulaID)
		if err != nil {
			return nil, internalError(err, "failed to load formula")
		}
		if ok {
			r := formula.Rule()
			rule = &r
		}
	}

	fields := aggregate.ValidateDefinition(def, rule)
	if fields.Empty() && def.Aggregated {
		selected := def.Selected()
		found, err := s.repo.FindByIDs(ctx, selected)
		if err != nil {
			return nil, internalError(err, "failed to load component metrics")
		}
		known := make(map[int64]aggregate.Metric, len(found))
		for _, m := range found {
			known[m.ID] = m.Rule()
		}
		fields = aggregate.ValidateComponents(selfID, selected, known)
	}
	if !fields.Empty() {
		return nil, appErrors.NewValidation(fields)
	}

	metric := &models.Metric{
		Name:        req.Name,
		Description: req.Description,
		CoachID:     req.CoachID,
		SportID:     req.SportID,
		Aggregated:  req.Aggregated,
		Components:  []int64{},
	}
	if def.Aggregated {
		formulaID := def.FormulaID
		metric.FormulaID = &formulaID
		metric.Components = def.Selected()
	}
	return metric, nil
}
