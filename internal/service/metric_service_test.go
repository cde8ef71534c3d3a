package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/dto"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

func newMetricFixture(t *testing.T) (*MetricService, *fakeMetricRepo, *fakeCacheRepo) {
	t.Helper()
	repo := newFakeMetricRepo(
		baseMetric(1, "Goals"),
		baseMetric(2, "Matches"),
		baseMetric(3, "Assists"),
		aggregatedMetric(4, "Goals per match", 1, 1, 2),
	)
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, 0, zap.NewNop(), true)
	return NewMetricService(repo, newFakeFormulaCatalog(), cache, zap.NewNop()), repo, cacheRepo
}

func TestMetricServiceCreateAggregated(t *testing.T) {
	svc, repo, _ := newMetricFixture(t)

	metric, err := svc.Create(context.Background(), dto.MetricRequest{
		Name:       "Contributions",
		CoachID:    1,
		SportID:    1,
		Aggregated: true,
		FormulaID:  int64Ptr(2),
		Components: []int64{1, 0, 3},
	}, "coach")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, []int64(metric.Components))
	assert.Equal(t, "coach", metric.CreatedBy)
	assert.Contains(t, repo.metrics, metric.ID)
}

func TestMetricServiceCreateRejectsArity(t *testing.T) {
	svc, _, _ := newMetricFixture(t)

	_, err := svc.Create(context.Background(), dto.MetricRequest{
		Name:       "Ratio",
		CoachID:    1,
		SportID:    1,
		Aggregated: true,
		FormulaID:  int64Ptr(1),
		Components: []int64{1, 2, 3},
	}, "coach")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "This formula requires exactly 2 metrics", appErr.Details["ids_metrics"])
}

func TestMetricServiceCreateRejectsAggregatedComponent(t *testing.T) {
	svc, _, _ := newMetricFixture(t)

	_, err := svc.Create(context.Background(), dto.MetricRequest{
		Name:       "Nested",
		CoachID:    1,
		SportID:    1,
		Aggregated: true,
		FormulaID:  int64Ptr(2),
		Components: []int64{1, 4},
	}, "coach")
	require.Error(t, err)
	assert.Equal(t, "Aggregated metrics cannot be used as formula components", appErrors.FromError(err).Details["ids_metrics"])
}

func TestMetricServiceCreateBaseDropsFormula(t *testing.T) {
	svc, _, _ := newMetricFixture(t)

	metric, err := svc.Create(context.Background(), dto.MetricRequest{
		Name:       "Saves",
		CoachID:    1,
		SportID:    1,
		FormulaID:  int64Ptr(2),
		Components: []int64{1, 2},
	}, "coach")
	require.NoError(t, err)
	assert.Nil(t, metric.FormulaID)
	assert.Empty(t, metric.Components)
}

func TestMetricServiceUpdateKeepsReferencedMetricBase(t *testing.T) {
	svc, _, cacheRepo := newMetricFixture(t)

	_, err := svc.Update(context.Background(), 1, dto.MetricRequest{
		Name:       "Goals",
		CoachID:    1,
		SportID:    1,
		Aggregated: true,
		FormulaID:  int64Ptr(2),
		Components: []int64{2, 3},
	}, "coach")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details["aggregated"], "Goals per match")
	assert.Empty(t, cacheRepo.patterns)

	updated, err := svc.Update(context.Background(), 3, dto.MetricRequest{Name: "Key passes", CoachID: 1, SportID: 1, UpdatedBy: "analyst"}, "coach")
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "analyst", *updated.UpdatedBy)
	assert.Equal(t, []string{"athlete-metrics:*"}, cacheRepo.patterns)
}

func TestMetricServiceUpdateKeepsValuedMetricBase(t *testing.T) {
	svc, repo, cacheRepo := newMetricFixture(t)
	repo.valued = map[int64]bool{3: true}
	req := dto.MetricRequest{
		Name:       "Assists",
		CoachID:    1,
		SportID:    1,
		Aggregated: true,
		FormulaID:  int64Ptr(2),
		Components: []int64{1, 2},
	}

	_, err := svc.Update(context.Background(), 3, req, "coach")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "Metric already has athlete values and must stay a base metric", appErrors.FromError(err).Details["aggregated"])
	assert.False(t, repo.metrics[3].Aggregated)
	assert.Empty(t, cacheRepo.patterns)

	repo.valued = nil
	updated, err := svc.Update(context.Background(), 3, req, "coach")
	require.NoError(t, err)
	assert.True(t, updated.Aggregated)
}

func TestMetricServiceDelete(t *testing.T) {
	svc, repo, cacheRepo := newMetricFixture(t)
	ctx := context.Background()

	err := svc.Delete(ctx, 1, "coach")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	require.NoError(t, svc.Delete(ctx, 4, "coach"))
	require.NoError(t, svc.Delete(ctx, 1, "coach"))
	assert.Equal(t, []int64{4, 1}, repo.deleted)
	assert.Len(t, cacheRepo.patterns, 2)

	err = svc.Delete(ctx, 99, "coach")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestMetricServiceSelectable(t *testing.T) {
	svc, _, _ := newMetricFixture(t)

	resp, err := svc.Selectable(context.Background(), dto.SelectableQuery{CoachID: 1, SportID: 1, FormulaID: 2, Chosen: []int64{1, 0}, Slot: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Slots)
	assert.True(t, resp.CanAdd)
	assert.False(t, resp.CanRemove)
	ids := make([]int64, 0, len(resp.Options))
	for _, o := range resp.Options {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int64{2, 3}, ids)

	_, err = svc.Selectable(context.Background(), dto.SelectableQuery{FormulaID: 1, Chosen: []int64{1, 2, 3}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Selectable(context.Background(), dto.SelectableQuery{FormulaID: 9})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
