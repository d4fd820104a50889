package analytics

import (
	"sort"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// GroupByProduct folds the orders into per-product summaries. Orders
// without a product name are skipped. Output is in first-encounter order.
func GroupByProduct(in []orders.Order) []ProductSummary {
	index := make(map[string]int, len(in))
	out := make([]ProductSummary, 0)

	for _, o := range in {
		if o.ProductName == "" {
			continue
		}
		i, ok := index[o.ProductName]
		if !ok {
			i = len(out)
			index[o.ProductName] = i
			out = append(out, ProductSummary{Name: o.ProductName})
		}
		out[i].TotalQuantity += o.Quantity
		out[i].TotalRevenue += o.TotalPrice
		out[i].OrderCount++
	}
	return out
}

// GroupByWeek folds the orders into week buckets keyed by the Monday of
// each order's week. Output is in first-encounter order; use SortWeeks
// before handing buckets to growth computation or charts.
func GroupByWeek(in []orders.Order) []WeekBucket {
	index := make(map[string]int, len(in))
	out := make([]WeekBucket, 0)

	for _, o := range in {
		key := WeekKey(o.OrderedAt)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, WeekBucket{WeekStart: key, Label: WeekLabel(key)})
		}
		out[i].Revenue += o.TotalPrice
		out[i].Quantity += o.Quantity
		out[i].OrderCount++
	}
	return out
}

// GroupByWeekProduct folds the orders into per-(week, product) summaries.
// Orders without a product name are skipped, as in GroupByProduct.
func GroupByWeekProduct(in []orders.Order) []WeeklyProductSummary {
	type key struct {
		week    string
		product string
	}
	index := make(map[key]int, len(in))
	out := make([]WeeklyProductSummary, 0)

	for _, o := range in {
		if o.ProductName == "" {
			continue
		}
		k := key{week: WeekKey(o.OrderedAt), product: o.ProductName}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, WeeklyProductSummary{WeekStart: k.week, Product: k.product})
		}
		out[i].TotalQuantity += o.Quantity
		out[i].TotalRevenue += o.TotalPrice
		out[i].OrderCount++
	}
	return out
}

// SortWeeks returns a copy of the buckets sorted ascending by week start.
// Week keys are YYYY-MM-DD strings, so lexicographic order is
// chronological.
func SortWeeks(weeks []WeekBucket) []WeekBucket {
	out := make([]WeekBucket, len(weeks))
	copy(out, weeks)
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}
