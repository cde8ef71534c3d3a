package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

type cachedBoard struct {
	AthleteID int64 `json:"athlete_id"`
	Entries   int   `json:"entries"`
}

func TestCacheRepositoryGetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectGet("athlete-metrics:9").SetVal(`{"athlete_id":9,"entries":3}`)

	var dest cachedBoard
	require.NoError(t, repo.Get(context.Background(), "athlete-metrics:9", &dest))
	assert.Equal(t, cachedBoard{AthleteID: 9, Entries: 3}, dest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectGet("athlete-metrics:9").RedisNil()

	var dest cachedBoard
	err := repo.Get(context.Background(), "athlete-metrics:9", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositorySet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectSet("athlete-metrics:9", []byte(`{"athlete_id":9,"entries":1}`), time.Minute).SetVal("OK")

	require.NoError(t, repo.Set(context.Background(), "athlete-metrics:9", cachedBoard{AthleteID: 9, Entries: 1}, time.Minute))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectScan(0, "athlete-metrics:*", scanBatch).SetVal([]string{"athlete-metrics:1", "athlete-metrics:2"}, 7)
	mock.ExpectDel("athlete-metrics:1", "athlete-metrics:2").SetVal(2)
	mock.ExpectScan(7, "athlete-metrics:*", scanBatch).SetVal([]string{}, 0)

	require.NoError(t, repo.DeleteByPattern(context.Background(), "athlete-metrics:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)

	var dest cachedBoard
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", dest, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "*"))
}
