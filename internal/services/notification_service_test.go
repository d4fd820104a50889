package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/clients"
)

type fakeNotificationAPI struct {
	items []clients.Notification

	listErr   error
	mutateErr error

	markReadIDs    []string
	markAllReads   int
	markAllUnreads int
}

func (f *fakeNotificationAPI) List(ctx context.Context) ([]clients.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]clients.Notification, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeNotificationAPI) MarkRead(ctx context.Context, id string) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.markReadIDs = append(f.markReadIDs, id)
	return nil
}

func (f *fakeNotificationAPI) MarkAllRead(ctx context.Context) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.markAllReads++
	return nil
}

func (f *fakeNotificationAPI) MarkAllUnread(ctx context.Context) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.markAllUnreads++
	return nil
}

func notificationFixture() []clients.Notification {
	return []clients.Notification{
		{ID: "n1", Type: "order", Message: "New order received", Read: false},
		{ID: "n2", Type: "order", Message: "Order dispatched", Read: false},
		{ID: "n3", Type: "system", Message: "Welcome", Read: true},
	}
}

func newNotificationService(t *testing.T, api *fakeNotificationAPI) *NotificationService {
	t.Helper()
	svc := NewNotificationService(api, zap.NewNop())
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	return svc
}

func TestNotificationServiceRefresh(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture()}
	svc := newNotificationService(t, api)

	assert.Len(t, svc.Items(), 3)
	assert.Equal(t, 2, svc.UnreadCount())
}

func TestNotificationServiceMarkRead(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture()}
	svc := newNotificationService(t, api)

	require.NoError(t, svc.MarkRead(context.Background(), "n1"))

	assert.Equal(t, []string{"n1"}, api.markReadIDs)
	assert.Equal(t, 1, svc.UnreadCount())
	items := svc.Items()
	assert.True(t, items[0].Read)
	assert.False(t, items[1].Read)
}

func TestNotificationServiceMarkReadRollsBackOnFailure(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture(), mutateErr: errors.New("upstream down")}
	svc := newNotificationService(t, api)

	require.Error(t, svc.MarkRead(context.Background(), "n1"))

	assert.Equal(t, 2, svc.UnreadCount(), "failed mutation must restore the previous state")
	assert.False(t, svc.Items()[0].Read)
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture()}
	svc := newNotificationService(t, api)

	require.NoError(t, svc.MarkAllRead(context.Background()))
	assert.Equal(t, 0, svc.UnreadCount())
	assert.Equal(t, 1, api.markAllReads)
}

func TestNotificationServiceMarkAllUnread(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture()}
	svc := newNotificationService(t, api)

	require.NoError(t, svc.MarkAllUnread(context.Background()))
	assert.Equal(t, 3, svc.UnreadCount())
	assert.Equal(t, 1, api.markAllUnreads)
}

func TestNotificationServiceMarkAllReadRollsBackOnFailure(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture(), mutateErr: errors.New("upstream down")}
	svc := newNotificationService(t, api)

	require.Error(t, svc.MarkAllRead(context.Background()))
	assert.Equal(t, 2, svc.UnreadCount())
}

func TestNotificationServiceItemsReturnsCopy(t *testing.T) {
	api := &fakeNotificationAPI{items: notificationFixture()}
	svc := newNotificationService(t, api)

	items := svc.Items()
	items[0].Read = true
	assert.False(t, svc.Items()[0].Read, "mutating the returned slice must not affect service state")
}
