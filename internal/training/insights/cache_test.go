package insights_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
	"github.com/athletiq/athlete-tracker/internal/training/insights"
)

func TestCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := insights.NewCache(db, time.Minute, metrics.NewTestManager())

	mock.ExpectGet("athlete-tracker-insights||p1").RedisNil()

	cached, err := cache.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_SetThenGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := insights.NewCache(db, time.Minute, metrics.NewTestManager())

	playerInsights := &insights.Insights{
		TotalSessions: 3,
		AvgRunTime:    "7:45",
	}
	insightsJson, err := json.Marshal(playerInsights)
	require.NoError(t, err)

	mock.ExpectSet("athlete-tracker-insights||p1", insightsJson, time.Minute).SetVal("OK")
	require.NoError(t, cache.Set(context.Background(), "p1", playerInsights))

	mock.ExpectGet("athlete-tracker-insights||p1").SetVal(string(insightsJson))
	cached, err := cache.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 3, cached.TotalSessions)
	assert.Equal(t, "7:45", cached.AvgRunTime)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetCorruptEntryIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := insights.NewCache(db, time.Minute, metrics.NewTestManager())

	mock.ExpectGet("athlete-tracker-insights||p1").SetVal("{not-json")

	cached, err := cache.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := insights.NewCache(db, time.Minute, metrics.NewTestManager())

	mock.ExpectDel("athlete-tracker-insights||p1").SetVal(1)

	require.NoError(t, cache.Invalidate(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
