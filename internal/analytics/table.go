package analytics

import (
	"math"
	"sort"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 10

// Direction is a table sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Table columns the dashboard can sort by.
const (
	ColumnID         = "id"
	ColumnProduct    = "product_name"
	ColumnCustomer   = "customer_name"
	ColumnShop       = "shop_name"
	ColumnOrderedAt  = "ordered_at"
	ColumnQuantity   = "quantity"
	ColumnTotalPrice = "total_price"
	ColumnStatus     = "status"
)

// TableState is the immutable sort/pagination state of the detailed table.
// Transitions return a new state rather than mutating in place.
type TableState struct {
	SortColumn    string    `json:"sort_column"`
	SortDirection Direction `json:"sort_direction"`
	Page          int       `json:"page"`
}

// DefaultTableState returns the initial table state: unsorted, page 1.
func DefaultTableState() TableState {
	return TableState{SortDirection: Ascending, Page: 1}
}

// WithSort returns the state after a click on the given column header:
// sorting a new column starts ascending, clicking the current column
// toggles direction. Either way the view resets to page 1.
func (s TableState) WithSort(column string) TableState {
	next := TableState{SortColumn: column, SortDirection: Ascending, Page: 1}
	if s.SortColumn == column && s.SortDirection == Ascending {
		next.SortDirection = Descending
	}
	return next
}

// WithPage returns the state moved to the given page, clamped to [1, max].
func (s TableState) WithPage(page, totalPages int) TableState {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	s.Page = page
	return s
}

// less compares two orders on the named column, ascending.
func less(a, b orders.Order, column string) bool {
	switch column {
	case ColumnProduct:
		return a.ProductName < b.ProductName
	case ColumnCustomer:
		return a.CustomerName < b.CustomerName
	case ColumnShop:
		return a.ShopName < b.ShopName
	case ColumnOrderedAt:
		return a.OrderedAt.Before(b.OrderedAt)
	case ColumnQuantity:
		return a.Quantity < b.Quantity
	case ColumnTotalPrice:
		return a.TotalPrice < b.TotalPrice
	case ColumnStatus:
		return a.Status < b.Status
	default:
		return a.ID < b.ID
	}
}

// SortBy returns a copy of the rows ordered on the named column.
func SortBy(rows []orders.Order, column string, direction Direction) []orders.Order {
	out := make([]orders.Order, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if direction == Descending {
			return less(out[j], out[i], column)
		}
		return less(out[i], out[j], column)
	})
	return out
}

// TotalPages returns the number of table pages for count rows.
func TotalPages(count int) int {
	return int(math.Ceil(float64(count) / float64(PageSize)))
}

// Page returns the rows of the given 1-based page. Out-of-range pages
// yield an empty slice.
func Page(rows []orders.Order, page int) []orders.Order {
	if page < 1 {
		return []orders.Order{}
	}
	start := (page - 1) * PageSize
	if start >= len(rows) {
		return []orders.Order{}
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// View applies the state to the rows: sort, then slice out the current
// page. It returns the page rows and the total page count.
func (s TableState) View(rows []orders.Order) ([]orders.Order, int) {
	sorted := rows
	if s.SortColumn != "" {
		sorted = SortBy(rows, s.SortColumn, s.SortDirection)
	}
	return Page(sorted, s.Page), TotalPages(len(sorted))
}
