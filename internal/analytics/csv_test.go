package analytics

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

func TestToCSVQuotesEveryField(t *testing.T) {
	out := ToCSV([]string{"a", "b"}, [][]string{{"1", "2"}})
	assert.Equal(t, "\"a\",\"b\"\n\"1\",\"2\"", out)
}

func TestToCSVRoundTrip(t *testing.T) {
	headers := []string{"id", "name", "note"}
	rows := [][]string{
		{"1", `widget, "deluxe"`, "contains ,comma"},
		{"2", `plain`, `He said "hi"`},
	}

	r := csv.NewReader(strings.NewReader(ToCSV(headers, rows)))
	parsed, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, headers, parsed[0])
	assert.Equal(t, rows[0], parsed[1])
	assert.Equal(t, rows[1], parsed[2])
}

func TestToCSVDownloadHasBOM(t *testing.T) {
	out := ToCSVDownload([]string{"x"}, nil)
	assert.True(t, strings.HasPrefix(out, "\uFEFF"))
}

func TestOrderTableCSV(t *testing.T) {
	o := order(`Tea "Premium"`, 3, 49.5, "2025-06-02", orders.StatusDelivered)
	o.ID = "abc123"
	o.CustomerName = "Ravi, K"
	o.ShopName = "Corner Shop"

	out := OrderTableCSV([]orders.Order{o})
	require.True(t, strings.HasPrefix(out, "\uFEFF"))

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF")))
	parsed, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{
		"abc123", `Tea "Premium"`, "Ravi, K", "Corner Shop",
		"2025-06-02", "3", "49.5", "delivered",
	}, parsed[1])
}
