package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/clients"
)

// NotificationAPI is the upstream notification service surface.
type NotificationAPI interface {
	List(ctx context.Context) ([]clients.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	MarkAllUnread(ctx context.Context) error
}

// NotificationService keeps a local view of the user's notifications and
// applies read-state mutations optimistically: the local view changes
// first, then the upstream call runs, and on failure the view is rolled
// back to the pre-mutation state.
type NotificationService struct {
	client NotificationAPI
	logger *zap.Logger

	mu    sync.RWMutex
	items []clients.Notification
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(client NotificationAPI, logger *zap.Logger) *NotificationService {
	return &NotificationService{client: client, logger: logger}
}

// Refresh replaces the local view with the upstream list.
func (s *NotificationService) Refresh(ctx context.Context) ([]clients.Notification, error) {
	items, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return items, nil
}

// Items returns a copy of the local view.
func (s *NotificationService) Items() []clients.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]clients.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount returns the number of unread notifications in the local view.
func (s *NotificationService) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead marks one notification read, rolling the local view back if the
// upstream call fails.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.mutate(ctx, func(items []clients.Notification) {
		for i := range items {
			if items[i].ID == id {
				items[i].Read = true
				return
			}
		}
	}, func(ctx context.Context) error {
		return s.client.MarkRead(ctx, id)
	})
}

// MarkAllRead marks every notification read, with rollback on failure.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.mutate(ctx, func(items []clients.Notification) {
		for i := range items {
			items[i].Read = true
		}
	}, s.client.MarkAllRead)
}

// MarkAllUnread marks every notification unread, with rollback on failure.
func (s *NotificationService) MarkAllUnread(ctx context.Context) error {
	return s.mutate(ctx, func(items []clients.Notification) {
		for i := range items {
			items[i].Read = false
		}
	}, s.client.MarkAllUnread)
}

// mutate applies fn to a copy of the view, installs it, runs the upstream
// call, and restores the snapshot if the call fails.
func (s *NotificationService) mutate(ctx context.Context, fn func([]clients.Notification), call func(context.Context) error) error {
	s.mu.Lock()
	snapshot := s.items
	next := make([]clients.Notification, len(s.items))
	copy(next, s.items)
	fn(next)
	s.items = next
	s.mu.Unlock()

	if err := call(ctx); err != nil {
		s.mu.Lock()
		s.items = snapshot
		s.mu.Unlock()
		s.logger.Warn("notification mutation failed, rolled back local state", zap.Error(err))
		return err
	}
	return nil
}
