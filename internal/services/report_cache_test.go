package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/analytics"
)

func TestReportCacheNilClient(t *testing.T) {
	cache := NewReportCache(nil, 0, zap.NewNop())

	got, err := cache.Get(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Nil(t, got, "a disabled cache always misses")

	assert.NoError(t, cache.Set(context.Background(), "2024-01-01", "2024-01-31", &analytics.Report{}))
	assert.NoError(t, cache.Invalidate(context.Background()))
}

func TestReportCacheKey(t *testing.T) {
	cache := NewReportCache(nil, 0, zap.NewNop())
	assert.Equal(t, "analytics:report:open:open", cache.cacheKey("open", "open"))
	assert.Equal(t, "analytics:report:2024-01-01:2024-01-31", cache.cacheKey("2024-01-01", "2024-01-31"))
}
