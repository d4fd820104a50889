package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/clients"
	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
	"github.com/shopsy-platform/service-analytics/internal/events"
)

// OrderHandler proxies order listings and status changes to the order
// service, keeping the local report snapshot in sync with our own writes.
type OrderHandler struct {
	client  *clients.OrderClient
	reports events.OrderEventHandler
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(client *clients.OrderClient, reports events.OrderEventHandler, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		client:  client,
		reports: reports,
		logger:  logger,
	}
}

// GetOrders lists the shop's orders.
// GET /api/v1/orders?kind=sales|purchases
func (h *OrderHandler) GetOrders(c *gin.Context) {
	kind := c.DefaultQuery("kind", "sales")

	var (
		records []orders.Record
		err     error
	)
	switch kind {
	case "sales":
		records, err = h.client.GetSalesOrders(c.Request.Context())
	case "purchases":
		records, err = h.client.GetPurchaseOrders(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind, expected sales or purchases"})
		return
	}
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":   kind,
		"orders": records,
		"count":  len(records),
	})
}

// UpdateOrderStatus changes an order's status upstream.
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status in request body"})
		return
	}

	if err := h.client.UpdateOrderStatus(c.Request.Context(), orderID, orders.Status(req.Status)); err != nil {
		if errors.Is(err, orders.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status: " + req.Status})
			return
		}
		h.writeUpstreamError(c, err)
		return
	}

	// Our own write changed the order list; refresh the aggregates without
	// waiting for the next poll.
	if h.reports != nil {
		go func() {
			if err := h.reports.HandleOrderChanged(&events.OrderChangedEvent{
				OrderID:   orderID,
				Status:    req.Status,
				Timestamp: time.Now().UTC(),
			}); err != nil {
				h.logger.Warn("report refresh after status update failed", zap.Error(err))
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   req.Status,
	})
}

func (h *OrderHandler) writeUpstreamError(c *gin.Context, err error) {
	h.logger.Error("order service request failed", zap.Error(err))

	switch {
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, orders.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized against the order service"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Order service request failed"})
	}
}
