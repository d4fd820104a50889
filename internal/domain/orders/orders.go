// Package orders provides domain types for Shopsy order records and the
// normalization boundary between the loosely-typed upstream API payloads
// and the strictly-typed aggregation engine.
package orders

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an order as reported by the Orders API.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
)

// Known returns true if the status is one of the documented lifecycle states.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDispatched, StatusDelivered,
		StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Excluded returns true if orders in this state are excluded from revenue
// and quantity aggregates.
func (s Status) Excluded() bool {
	return s == StatusRejected || s == StatusCancelled
}

// Record is the wire shape of one order as returned by the Orders API.
// Every field may be absent or zero-valued; Normalize is the only place
// that inspects a Record.
type Record struct {
	ID              string  `json:"_id"`
	ProductName     string  `json:"product_name"`
	Quantity        float64 `json:"quantity"`
	TotalPrice      float64 `json:"total_price"`
	OrderedAt       string  `json:"orderedAt"`
	Status          string  `json:"status"`
	CustomerName    string  `json:"customerName"`
	ShopName        string  `json:"shopName"`
	CustomerPhone   string  `json:"customerPhone"`
	ShopPhone       string  `json:"shopPhone"`
	CustomerAddress string  `json:"customerAddress"`
}

// Order is a normalized order record. All downstream aggregation code can
// assume default-filled fields and a parsed timestamp.
type Order struct {
	ID              string    `json:"id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	TotalPrice      float64   `json:"total_price"`
	OrderedAt       time.Time `json:"ordered_at"`
	Status          Status    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	ShopName        string    `json:"shop_name"`
	CustomerPhone   string    `json:"customer_phone"`
	ShopPhone       string    `json:"shop_phone"`
	CustomerAddress string    `json:"customer_address"`
}

// timestampLayouts are the formats the upstream API has been observed to
// emit for orderedAt. Flask's jsonify renders datetimes as RFC 1123.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"2006-01-02",
}

// parseOrderedAt parses an upstream timestamp. The zero time and false are
// returned when the value is absent or unparseable.
func parseOrderedAt(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize converts a wire Record into a strict Order. It returns false
// when the record has no usable orderedAt timestamp, in which case the
// record must be excluded from every date-based grouping. Missing numeric
// fields default to 0 and negatives are clamped, so the engine never sees
// an out-of-range value.
func Normalize(rec Record) (Order, bool) {
	ts, ok := parseOrderedAt(rec.OrderedAt)
	if !ok {
		return Order{}, false
	}

	qty := int(rec.Quantity)
	if qty < 0 {
		qty = 0
	}
	price := rec.TotalPrice
	if price < 0 {
		price = 0
	}

	return Order{
		ID:              rec.ID,
		ProductName:     strings.TrimSpace(rec.ProductName),
		Quantity:        qty,
		TotalPrice:      price,
		OrderedAt:       ts,
		Status:          Status(strings.ToLower(strings.TrimSpace(rec.Status))),
		CustomerName:    rec.CustomerName,
		ShopName:        rec.ShopName,
		CustomerPhone:   rec.CustomerPhone,
		ShopPhone:       rec.ShopPhone,
		CustomerAddress: rec.CustomerAddress,
	}, true
}

// NormalizeAll normalizes a batch of records, dropping the ones without a
// timestamp. Input order is preserved.
func NormalizeAll(recs []Record) []Order {
	out := make([]Order, 0, len(recs))
	for _, rec := range recs {
		if o, ok := Normalize(rec); ok {
			out = append(out, o)
		}
	}
	return out
}
