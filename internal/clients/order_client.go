// Package clients holds the HTTP clients for the upstream Shopsy backend.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// OrderClient handles communication with the Shopsy Orders API.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
	retry      *orders.RetryPolicy
	logger     *zap.Logger
}

// NewOrderClient creates a new OrderClient.
func NewOrderClient(baseURL string, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry:  orders.DefaultRetryPolicy(),
		logger: logger,
	}
}

// errorEnvelope is the upstream error shape: {"message": "..."}.
type errorEnvelope struct {
	Message string `json:"message"`
}

// GetSalesOrders fetches the shop's selling orders. On failure the caller
// keeps whatever snapshot it already holds; nothing partial is returned.
func (c *OrderClient) GetSalesOrders(ctx context.Context) ([]orders.Record, error) {
	var result struct {
		SellingOrders []orders.Record `json:"sellingOrders"`
		Message       string          `json:"message"`
	}
	if err := c.get(ctx, "/api/orders/sales", &result); err != nil {
		return nil, err
	}
	if result.Message != "" {
		return nil, orders.NewAPIError("/api/orders/sales", result.Message, http.StatusOK)
	}

	c.logger.Debug("fetched sales orders", zap.Int("count", len(result.SellingOrders)))
	return result.SellingOrders, nil
}

// GetPurchaseOrders fetches the shop's buying orders.
func (c *OrderClient) GetPurchaseOrders(ctx context.Context) ([]orders.Record, error) {
	var result struct {
		BuyingOrders []orders.Record `json:"buyingOrders"`
		Message      string          `json:"message"`
	}
	if err := c.get(ctx, "/api/orders/purchases", &result); err != nil {
		return nil, err
	}
	if result.Message != "" {
		return nil, orders.NewAPIError("/api/orders/purchases", result.Message, http.StatusOK)
	}

	c.logger.Debug("fetched purchase orders", zap.Int("count", len(result.BuyingOrders)))
	return result.BuyingOrders, nil
}

// UpdateOrderStatus pushes a status transition to the upstream API. The
// upstream enforces the legal transitions; this is a pass-through. Writes
// are never retried to avoid duplicate transitions.
func (c *OrderClient) UpdateOrderStatus(ctx context.Context, orderID string, status orders.Status) error {
	if !status.Known() {
		return fmt.Errorf("%w: %q", orders.ErrInvalidStatus, status)
	}

	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("failed to marshal status body: %w", err)
	}

	path := fmt.Sprintf("/api/orders/%s/status", orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", orders.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp, path)
	}
	return nil
}

// get performs a retried GET and decodes the response into result.
func (c *OrderClient) get(ctx context.Context, path string, result interface{}) error {
	res := c.retry.Retry(ctx, func() error {
		return c.doGet(ctx, path, result)
	})
	if res.LastError != nil {
		c.logger.Error("Orders API request failed",
			zap.String("path", path),
			zap.Int("attempts", res.Attempts),
			zap.Duration("duration", res.Duration),
			zap.Error(res.LastError),
		)
		return res.LastError
	}
	return nil
}

func (c *OrderClient) doGet(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", orders.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError builds a domain APIError from a non-200 response.
func (c *OrderClient) apiError(resp *http.Response, path string) error {
	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		envelope.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return orders.NewAPIError(path, envelope.Message, resp.StatusCode)
}
