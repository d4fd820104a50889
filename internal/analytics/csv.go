package analytics

import (
	"strconv"
	"strings"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// utf8BOM makes common spreadsheet tools detect the encoding of a
// downloaded file correctly.
const utf8BOM = "\ufeff"

// quote wraps a field in double quotes with embedded quotes doubled.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ToCSV renders a header row plus one row per record. Every field is
// individually quoted, fields are comma-joined and rows newline-joined.
// encoding/csv is not used because it only quotes fields that need it; the
// export contract quotes unconditionally.
func ToCSV(headers []string, rows [][]string) string {
	var b strings.Builder

	quoted := make([]string, len(headers))
	for i, h := range headers {
		quoted[i] = quote(h)
	}
	b.WriteString(strings.Join(quoted, ","))

	for _, row := range rows {
		b.WriteString("\n")
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = quote(cell)
		}
		b.WriteString(strings.Join(cells, ","))
	}
	return b.String()
}

// ToCSVDownload is the downloadable variant: ToCSV with a UTF-8 BOM prefix.
func ToCSVDownload(headers []string, rows [][]string) string {
	return utf8BOM + ToCSV(headers, rows)
}

// orderTableHeaders matches the detailed-sales table columns.
var orderTableHeaders = []string{
	"Order ID", "Product", "Customer", "Shop", "Order Date", "Quantity", "Total Price", "Status",
}

// OrderTableCSV renders the dated order rows as the downloadable
// detailed-sales export.
func OrderTableCSV(rows []orders.Order) string {
	records := make([][]string, len(rows))
	for i, o := range rows {
		records[i] = []string{
			o.ID,
			o.ProductName,
			o.CustomerName,
			o.ShopName,
			o.OrderedAt.UTC().Format(dateLayout),
			strconv.Itoa(o.Quantity),
			strconv.FormatFloat(o.TotalPrice, 'f', -1, 64),
			string(o.Status),
		}
	}
	return ToCSVDownload(orderTableHeaders, records)
}
