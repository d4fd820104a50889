package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/clients"
)

func newOrderRouter(upstream *httptest.Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	client := clients.NewOrderClient(upstream.URL, zap.NewNop())
	h := NewOrderHandler(client, nil, zap.NewNop())

	router := gin.New()
	router.GET("/orders", h.GetOrders)
	router.PUT("/orders/:id/status", h.UpdateOrderStatus)
	return router
}

func TestGetOrdersSales(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/sales", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sellingOrders": [{"_id": "o1", "product_name": "Batik Shirt", "quantity": 2, "total_price": 100, "orderedAt": "2024-01-03T10:00:00Z", "status": "delivered"}]}`))
	}))
	defer upstream.Close()

	router := newOrderRouter(upstream)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sales", body["kind"])
	assert.Equal(t, float64(1), body["count"])
}

func TestGetOrdersInvalidKind(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an invalid kind")
	}))
	defer upstream.Close()

	router := newOrderRouter(upstream)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?kind=returns", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrdersUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "database unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	router := newOrderRouter(upstream)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	var gotPath, gotMethod string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "updated"}`))
	}))
	defer upstream.Close()

	router := newOrderRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/o1/status",
		bytes.NewBufferString(`{"status": "accepted"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/orders/o1/status", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
}

func TestUpdateOrderStatusUnknownStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an unknown status")
	}))
	defer upstream.Close()

	router := newOrderRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/o1/status",
		bytes.NewBufferString(`{"status": "teleported"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusMissingBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without a status")
	}))
	defer upstream.Close()

	router := newOrderRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/o1/status", bytes.NewBufferString(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
