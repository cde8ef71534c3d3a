package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/dto"
)

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	svc.Set(ctx, BoardCacheKey(1), dto.AthleteBoard{AthleteID: 1}, 0)
	var out dto.AthleteBoard
	assert.False(t, svc.Get(ctx, BoardCacheKey(1), &out))
	svc.InvalidateBoards(ctx)
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.patterns)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	nilSvc.InvalidateBoard(ctx, 1)
}

func TestCacheServiceRecordsHitRatio(t *testing.T) {
	repo := newFakeCacheRepo()
	telemetry := NewTelemetryService()
	svc := NewCacheService(repo, telemetry, 0, nil, true)
	ctx := context.Background()

	var out dto.AthleteBoard
	assert.False(t, svc.Get(ctx, BoardCacheKey(1), &out))
	svc.Set(ctx, BoardCacheKey(1), dto.AthleteBoard{AthleteID: 1}, 0)
	require.True(t, svc.Get(ctx, BoardCacheKey(1), &out))
	assert.Equal(t, int64(1), out.AthleteID)

	snapshot := telemetry.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 0.001)

	svc.InvalidateBoard(ctx, 1)
	assert.False(t, svc.Get(ctx, BoardCacheKey(1), &out))
}
