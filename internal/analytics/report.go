package analytics

import (
	"time"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// BuildReport recomputes every aggregate from the given normalized order
// list. There is no incremental path: any change to the inputs discards
// the previous report entirely.
func BuildReport(raw []orders.Order) *Report {
	dated := FilterDated(raw)
	valid := FilterValid(dated)

	products := GroupByProduct(valid)
	weeks := SortWeeks(GroupByWeek(valid))

	return &Report{
		Orders:         dated,
		Products:       products,
		Weeks:          ComputeGrowth(weeks),
		WeeklyProducts: GroupByWeekProduct(valid),
		Summary:        ComputeSummary(valid, products, weeks, len(dated)),
		Empty:          len(valid) == 0,
		GeneratedAt:    time.Now().UTC(),
	}
}

// BuildReportInRange recomputes aggregates over the orders whose timestamp
// falls within [start, end]. A zero start or end leaves that side open.
func BuildReportInRange(raw []orders.Order, start, end time.Time) *Report {
	if start.IsZero() && end.IsZero() {
		return BuildReport(raw)
	}

	filtered := make([]orders.Order, 0, len(raw))
	for _, o := range raw {
		if o.OrderedAt.IsZero() {
			continue
		}
		if !start.IsZero() && o.OrderedAt.Before(start) {
			continue
		}
		if !end.IsZero() && o.OrderedAt.After(end) {
			continue
		}
		filtered = append(filtered, o)
	}
	return BuildReport(filtered)
}
