package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type fakeAthletes struct {
	athletes map[int64]models.Athlete
}

func newFakeAthletes(ids ...int64) *fakeAthletes {
	f := &fakeAthletes{athletes: make(map[int64]models.Athlete)}
	for _, id := range ids {
		f.athletes[id] = models.Athlete{ID: id, Name: gofakeit.Name()}
	}
	return f
}

func (f *fakeAthletes) FindByID(ctx context.Context, id int64) (*models.Athlete, error) {
	a, ok := f.athletes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

type fakeMetricRepo struct {
	metrics map[int64]models.Metric
	deleted []int64
	nextID  int64
	valued  map[int64]bool
}

func newFakeMetricRepo(metrics ...models.Metric) *fakeMetricRepo {
	f := &fakeMetricRepo{metrics: make(map[int64]models.Metric), nextID: 100}
	for _, m := range metrics {
		f.metrics[m.ID] = m
	}
	return f
}

func (f *fakeMetricRepo) List(ctx context.Context, filter models.MetricFilter) ([]models.Metric, error) {
	out := make([]models.Metric, 0, len(f.metrics))
	for _, m := range f.metrics {
		if filter.CoachID != 0 && m.CoachID != filter.CoachID {
			continue
		}
		if filter.SportID != 0 && m.SportID != filter.SportID {
			continue
		}
		if filter.Aggregated != nil && m.Aggregated != *filter.Aggregated {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMetricRepo) FindByID(ctx context.Context, id int64) (*models.Metric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &m, nil
}

func (f *fakeMetricRepo) FindByIDs(ctx context.Context, ids []int64) ([]models.Metric, error) {
	out := make([]models.Metric, 0, len(ids))
	for _, id := range ids {
		if m, ok := f.metrics[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMetricRepo) HasValues(ctx context.Context, id int64) (bool, error) {
	return f.valued[id], nil
}

func (f *fakeMetricRepo) ReferencedBy(ctx context.Context, id int64) ([]models.Metric, error) {
	var out []models.Metric
	for _, m := range f.metrics {
		if !m.Aggregated {
			continue
		}
		for _, c := range m.Components {
			if c == id {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMetricRepo) Create(ctx context.Context, metric *models.Metric) error {
	f.nextID++
	metric.ID = f.nextID
	metric.CreatedAt = time.Now()
	f.metrics[metric.ID] = *metric
	return nil
}

func (f *fakeMetricRepo) Update(ctx context.Context, metric *models.Metric) error {
	f.metrics[metric.ID] = *metric
	return nil
}

func (f *fakeMetricRepo) SoftDelete(ctx context.Context, id int64, actor string) error {
	delete(f.metrics, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeFormulaCatalog struct {
	formulas map[int64]models.Formula
}

func newFakeFormulaCatalog() *fakeFormulaCatalog {
	return &fakeFormulaCatalog{formulas: map[int64]models.Formula{
		1: {ID: 1, Code: "DIVISION", Name: "Division", MaxArguments: 2},
		2: {ID: 2, Code: "SUM", Name: "Sum", MaxArguments: -1},
		3: {ID: 3, Code: "AVERAGE", Name: "Average", MaxArguments: -1},
		4: {ID: 4, Code: "PRODUCT", Name: "Product", MaxArguments: -1},
	}}
}

func (f *fakeFormulaCatalog) List(ctx context.Context) ([]models.Formula, error) {
	out := make([]models.Formula, 0, len(f.formulas))
	for _, formula := range f.formulas {
		out = append(out, formula)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFormulaCatalog) ByID(ctx context.Context) (map[int64]models.Formula, error) {
	return f.formulas, nil
}

func (f *fakeFormulaCatalog) Find(ctx context.Context, id int64) (*models.Formula, bool, error) {
	formula, ok := f.formulas[id]
	if !ok {
		return nil, false, nil
	}
	return &formula, true, nil
}

type fakeCacheRepo struct {
	items    map[string][]byte
	deleted  []string
	patterns []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{items: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.items[key] = raw
	return nil
}

func (f *fakeCacheRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.items, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.items {
		if strings.HasPrefix(key, prefix) {
			delete(f.items, key)
		}
	}
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func baseMetric(id int64, name string) models.Metric {
	return models.Metric{ID: id, Name: name, CoachID: 1, SportID: 1}
}

func aggregatedMetric(id int64, name string, formulaID int64, components ...int64) models.Metric {
	return models.Metric{ID: id, Name: name, CoachID: 1, SportID: 1, Aggregated: true, FormulaID: int64Ptr(formulaID), Components: components}
}
