package analytics

// ComputeGrowth annotates week buckets with week-over-week growth
// percentages. The input must be sorted ascending by week start. The first
// week has growth 0, and a zero-revenue or zero-quantity previous week
// yields growth 0 rather than an infinity leaking into the dashboard.
func ComputeGrowth(weeks []WeekBucket) []WeekGrowth {
	out := make([]WeekGrowth, len(weeks))
	for i, w := range weeks {
		out[i] = WeekGrowth{WeekBucket: w}
		if i == 0 {
			continue
		}
		prev := weeks[i-1]
		if prev.Revenue > 0 {
			out[i].RevenueGrowthPct = (w.Revenue - prev.Revenue) / prev.Revenue * 100
		}
		if prev.Quantity > 0 {
			out[i].QuantityGrowthPct = float64(w.Quantity-prev.Quantity) / float64(prev.Quantity) * 100
		}
	}
	return out
}
