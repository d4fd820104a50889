package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/services"
)

// NotificationHandler exposes the local notification view with optimistic
// read-state updates.
type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *services.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// GetNotifications lists the notifications, refreshing from upstream.
// GET /api/v1/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	items, err := h.notifications.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		// Serve the last known view so the bell does not go blank.
		items = h.notifications.Items()
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  h.notifications.UnreadCount(),
	})
}

// MarkRead marks a single notification read.
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing notification ID"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to mark notification read", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Notification service request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           id,
		"unread_count": h.notifications.UnreadCount(),
	})
}

// MarkAllRead marks every notification read.
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context()); err != nil {
		h.logger.Error("failed to mark all notifications read", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Notification service request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": h.notifications.UnreadCount()})
}

// MarkAllUnread marks every notification unread.
// POST /api/v1/notifications/unread-all
func (h *NotificationHandler) MarkAllUnread(c *gin.Context) {
	if err := h.notifications.MarkAllUnread(c.Request.Context()); err != nil {
		h.logger.Error("failed to mark all notifications unread", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Notification service request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": h.notifications.UnreadCount()})
}
