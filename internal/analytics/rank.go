package analytics

import "sort"

// DefaultTopN is the ranking size used when the caller passes n <= 0.
const DefaultTopN = 10

// topN stable-sorts a copy of the summaries descending by the given metric
// and truncates to n entries. Ties keep the grouping-encounter order.
func topN(products []ProductSummary, n int, metric func(ProductSummary) float64) []ProductSummary {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]ProductSummary, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool { return metric(out[i]) > metric(out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopNByRevenue returns the n products with the highest total revenue.
func TopNByRevenue(products []ProductSummary, n int) []ProductSummary {
	return topN(products, n, func(p ProductSummary) float64 { return p.TotalRevenue })
}

// TopNByOrderCount returns the n products with the most orders.
func TopNByOrderCount(products []ProductSummary, n int) []ProductSummary {
	return topN(products, n, func(p ProductSummary) float64 { return float64(p.OrderCount) })
}

// TopNByQuantity returns the n products with the most units sold.
func TopNByQuantity(products []ProductSummary, n int) []ProductSummary {
	return topN(products, n, func(p ProductSummary) float64 { return float64(p.TotalQuantity) })
}
