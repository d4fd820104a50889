package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

func TestComputeSummaryEmpty(t *testing.T) {
	stats := ComputeSummary(nil, nil, nil, 0)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.TotalQuantity)
	assert.Nil(t, stats.BestSellingProduct)
	assert.Nil(t, stats.WorstSellingProduct)
	assert.Zero(t, stats.TotalWeeks)
	assert.Zero(t, stats.AvgWeeklyRevenue)
	assert.Nil(t, stats.BestWeek)
}

func TestComputeSummary(t *testing.T) {
	valid := []orders.Order{
		order("A", 2, 100, "2025-06-02", orders.StatusDelivered),
		order("B", 5, 80, "2025-06-09", orders.StatusDelivered),
		order("A", 1, 60, "2025-06-09", orders.StatusAccepted),
	}
	products := GroupByProduct(valid)
	weeks := SortWeeks(GroupByWeek(valid))

	stats := ComputeSummary(valid, products, weeks, 4)

	assert.InDelta(t, 240.0, stats.TotalRevenue, 1e-9)
	assert.Equal(t, 8, stats.TotalQuantity)
	require.NotNil(t, stats.BestSellingProduct)
	assert.Equal(t, "B", stats.BestSellingProduct.Name)
	require.NotNil(t, stats.WorstSellingProduct)
	assert.Equal(t, "A", stats.WorstSellingProduct.Name)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalWeeks)
	assert.InDelta(t, 120.0, stats.AvgWeeklyRevenue, 1e-9)
	assert.InDelta(t, 4.0, stats.AvgWeeklyQuantity, 1e-9)
	require.NotNil(t, stats.BestWeek)
	assert.Equal(t, "2025-06-09", stats.BestWeek.WeekStart)
	require.NotNil(t, stats.WorstWeek)
	assert.Equal(t, "2025-06-02", stats.WorstWeek.WeekStart)
}

func TestComputeSummaryTieBreaksFirstEncounter(t *testing.T) {
	products := []ProductSummary{
		{Name: "first", TotalQuantity: 3},
		{Name: "second", TotalQuantity: 3},
	}
	stats := ComputeSummary(nil, products, nil, 0)
	require.NotNil(t, stats.BestSellingProduct)
	assert.Equal(t, "first", stats.BestSellingProduct.Name)
	require.NotNil(t, stats.WorstSellingProduct)
	assert.Equal(t, "first", stats.WorstSellingProduct.Name)
}
