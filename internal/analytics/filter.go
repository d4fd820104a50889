package analytics

import "github.com/shopsy-platform/service-analytics/internal/domain/orders"

// FilterDated returns the orders that carry a timestamp, in input order.
// This superset feeds the raw detailed table; records without orderedAt are
// excluded from everything.
func FilterDated(in []orders.Order) []orders.Order {
	out := make([]orders.Order, 0, len(in))
	for _, o := range in {
		if o.OrderedAt.IsZero() {
			continue
		}
		out = append(out, o)
	}
	return out
}

// FilterValid returns the dated orders whose status is neither rejected nor
// cancelled, in input order. Every revenue and quantity aggregate is
// computed over this set.
func FilterValid(in []orders.Order) []orders.Order {
	out := make([]orders.Order, 0, len(in))
	for _, o := range in {
		if o.OrderedAt.IsZero() || o.Status.Excluded() {
			continue
		}
		out = append(out, o)
	}
	return out
}
