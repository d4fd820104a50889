package analytics

import "github.com/shopsy-platform/service-analytics/internal/domain/orders"

// ComputeSummary derives the KPI block from the valid order set and the
// already-computed aggregates. totalOrders is the size of the dated,
// status-unfiltered display set, matching what the raw table shows.
// Best/worst picks break ties by first encounter; averages over an empty
// week list are 0, not a division error.
func ComputeSummary(valid []orders.Order, products []ProductSummary, weeks []WeekBucket, totalOrders int) SummaryStats {
	stats := SummaryStats{
		TotalOrders:   totalOrders,
		TotalProducts: len(products),
		TotalWeeks:    len(weeks),
	}

	for _, o := range valid {
		stats.TotalRevenue += o.TotalPrice
		stats.TotalQuantity += o.Quantity
	}

	for i := range products {
		p := &products[i]
		if stats.BestSellingProduct == nil || p.TotalQuantity > stats.BestSellingProduct.TotalQuantity {
			stats.BestSellingProduct = p
		}
		if stats.WorstSellingProduct == nil || p.TotalQuantity < stats.WorstSellingProduct.TotalQuantity {
			stats.WorstSellingProduct = p
		}
	}

	var weekRevenue float64
	var weekQuantity int
	for i := range weeks {
		w := &weeks[i]
		weekRevenue += w.Revenue
		weekQuantity += w.Quantity
		if stats.BestWeek == nil || w.Revenue > stats.BestWeek.Revenue {
			stats.BestWeek = w
		}
		if stats.WorstWeek == nil || w.Revenue < stats.WorstWeek.Revenue {
			stats.WorstWeek = w
		}
	}
	if len(weeks) > 0 {
		stats.AvgWeeklyRevenue = weekRevenue / float64(len(weeks))
		stats.AvgWeeklyQuantity = float64(weekQuantity) / float64(len(weeks))
	}

	return stats
}
