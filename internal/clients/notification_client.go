package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// Notification is one notification row as returned by the upstream API.
type Notification struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userid"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"readOrNot"`
	ReferenceID string    `json:"reference_id"`
}

// NotificationClient handles communication with the notifications API.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNotificationClient creates a new NotificationClient.
func NewNotificationClient(baseURL string, logger *zap.Logger) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// List fetches the user's notifications.
func (c *NotificationClient) List(ctx context.Context) ([]Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/notifications", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", orders.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp, "/api/notifications")
	}

	var result struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Notifications, nil
}

// MarkRead flags one notification as read upstream.
func (c *NotificationClient) MarkRead(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/notifications/%s/read", id))
}

// MarkAllRead flags every notification as read upstream.
func (c *NotificationClient) MarkAllRead(ctx context.Context) error {
	return c.post(ctx, "/api/notifications/read-all")
}

// MarkAllUnread flags every notification as unread upstream.
func (c *NotificationClient) MarkAllUnread(ctx context.Context) error {
	return c.post(ctx, "/api/notifications/unread-all")
}

func (c *NotificationClient) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
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
	return nil
}

func (c *NotificationClient) apiError(resp *http.Response, path string) error {
	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		envelope.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return orders.NewAPIError(path, envelope.Message, resp.StatusCode)
}
