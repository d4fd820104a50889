package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

func order(product string, qty int, price float64, day string, status orders.Status) orders.Order {
	var ts time.Time
	if day != "" {
		var err error
		ts, err = time.Parse("2006-01-02", day)
		if err != nil {
			panic(err)
		}
	}
	return orders.Order{
		ID:          product + "-" + day,
		ProductName: product,
		Quantity:    qty,
		TotalPrice:  price,
		OrderedAt:   ts,
		Status:      status,
	}
}

func TestFilterValidDropsRejectedAndCancelled(t *testing.T) {
	in := []orders.Order{
		order("A", 2, 100, "2025-06-02", orders.StatusDelivered),
		order("A", 3, 150, "2025-06-03", orders.StatusRejected),
		order("B", 1, 50, "2025-06-04", orders.StatusCancelled),
		order("B", 4, 200, "2025-06-05", orders.StatusPending),
	}

	valid := FilterValid(in)
	require.Len(t, valid, 2)
	assert.Equal(t, "A-2025-06-02", valid[0].ID)
	assert.Equal(t, "B-2025-06-05", valid[1].ID)
}

func TestFilterDatedDropsMissingTimestampOnly(t *testing.T) {
	in := []orders.Order{
		order("A", 2, 100, "2025-06-02", orders.StatusDelivered),
		order("A", 3, 150, "", orders.StatusDelivered),
		order("B", 1, 50, "2025-06-04", orders.StatusRejected),
	}

	dated := FilterDated(in)
	require.Len(t, dated, 2)
	// Rejected stays in the display set.
	assert.Equal(t, orders.StatusRejected, dated[1].Status)
}

func TestGroupByProductScenario(t *testing.T) {
	// Rejected record is dropped by FilterValid before grouping.
	in := []orders.Order{
		order("A", 2, 100, "2025-06-02", orders.StatusDelivered),
		order("A", 3, 150, "2025-06-03", orders.StatusRejected),
	}

	products := GroupByProduct(FilterValid(in))
	require.Len(t, products, 1)
	assert.Equal(t, ProductSummary{
		Name:          "A",
		TotalQuantity: 2,
		TotalRevenue:  100,
		OrderCount:    1,
	}, products[0])

	weeks := GroupByWeek(FilterValid(in))
	require.Len(t, weeks, 1)
	assert.Equal(t, "2025-06-02", weeks[0].WeekStart)
	assert.Equal(t, 100.0, weeks[0].Revenue)
	assert.Equal(t, 2, weeks[0].Quantity)
	assert.Equal(t, 1, weeks[0].OrderCount)
}

func TestGroupByProductSkipsUnnamedOrders(t *testing.T) {
	in := []orders.Order{
		order("", 5, 500, "2025-06-02", orders.StatusDelivered),
		order("A", 1, 10, "2025-06-02", orders.StatusDelivered),
	}

	products := GroupByProduct(in)
	require.Len(t, products, 1)
	assert.Equal(t, "A", products[0].Name)

	// Week-only grouping still counts the unnamed order.
	weeks := GroupByWeek(in)
	require.Len(t, weeks, 1)
	assert.Equal(t, 2, weeks[0].OrderCount)
	assert.Equal(t, 510.0, weeks[0].Revenue)
}

func TestRevenueAndQuantityConservation(t *testing.T) {
	in := []orders.Order{
		order("A", 2, 100, "2025-06-02", orders.StatusDelivered),
		order("B", 3, 150, "2025-06-03", orders.StatusAccepted),
		order("A", 1, 75, "2025-06-10", orders.StatusDispatched),
		order("C", 4, 10, "2025-06-11", orders.StatusRejected),
		order("B", 6, 90, "2025-06-15", orders.StatusPending),
	}
	valid := FilterValid(in)

	var wantRevenue float64
	var wantQuantity int
	for _, o := range valid {
		wantRevenue += o.TotalPrice
		wantQuantity += o.Quantity
	}

	var gotRevenue float64
	var gotQuantity int
	for _, p := range GroupByProduct(valid) {
		gotRevenue += p.TotalRevenue
		gotQuantity += p.TotalQuantity
	}
	assert.InDelta(t, wantRevenue, gotRevenue, 1e-9)
	assert.Equal(t, wantQuantity, gotQuantity)

	orderCount := 0
	for _, w := range GroupByWeek(valid) {
		orderCount += w.OrderCount
	}
	assert.Equal(t, len(valid), orderCount)
}

func TestGroupByWeekProduct(t *testing.T) {
	in := []orders.Order{
		order("A", 2, 100, "2025-06-02", orders.StatusDelivered),
		order("A", 1, 50, "2025-06-08", orders.StatusDelivered), // Sunday, same week
		order("A", 3, 150, "2025-06-09", orders.StatusDelivered), // next Monday
		order("B", 1, 20, "2025-06-09", orders.StatusDelivered),
	}

	rows := GroupByWeekProduct(in)
	require.Len(t, rows, 3)
	assert.Equal(t, WeeklyProductSummary{
		WeekStart: "2025-06-02", Product: "A", TotalQuantity: 3, TotalRevenue: 150, OrderCount: 2,
	}, rows[0])
	assert.Equal(t, "2025-06-09", rows[1].WeekStart)
	assert.Equal(t, "B", rows[2].Product)
}

func TestSortWeeksAscending(t *testing.T) {
	weeks := []WeekBucket{
		{WeekStart: "2025-06-16"},
		{WeekStart: "2025-06-02"},
		{WeekStart: "2025-06-09"},
	}
	sorted := SortWeeks(weeks)
	assert.Equal(t, "2025-06-02", sorted[0].WeekStart)
	assert.Equal(t, "2025-06-09", sorted[1].WeekStart)
	assert.Equal(t, "2025-06-16", sorted[2].WeekStart)
	// Input untouched.
	assert.Equal(t, "2025-06-16", weeks[0].WeekStart)
}
