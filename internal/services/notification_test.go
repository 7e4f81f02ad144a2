package services

import (
	"context"
	"fmt"
	"testing"

	"gravelmatch-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, store *fakeNotificationStore, recipientID string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, store.Create(context.Background(), &models.Notification{
			ID:          fmt.Sprintf("%s-n%d", recipientID, i),
			RecipientID: recipientID,
			Type:        models.NotificationMessage,
			Title:       "Nuovo messaggio",
			Body:        "Ciao!",
		}))
	}
}

func TestNotifications_MarkAllReadIdempotent(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store)
	ctx := context.Background()
	seedNotifications(t, store, "a", 3)

	count, err := svc.UnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, svc.MarkAllRead(ctx, "a"))
	count, err = svc.UnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Second call changes nothing.
	require.NoError(t, svc.MarkAllRead(ctx, "a"))
	count, err = svc.UnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNotifications_MarkReadScopedToRecipient(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store)
	ctx := context.Background()
	seedNotifications(t, store, "a", 1)

	// Another user marking a's notification is a silent no-op.
	require.NoError(t, svc.MarkRead(ctx, "a-n0", "b"))
	count, err := svc.UnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkRead(ctx, "a-n0", "a"))
	count, err = svc.UnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNotifications_ListUnreadOnly(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store)
	ctx := context.Background()
	seedNotifications(t, store, "a", 2)
	require.NoError(t, svc.MarkRead(ctx, "a-n0", "a"))

	all, err := svc.List(ctx, "a", false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := svc.List(ctx, "a", true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "a-n1", unread[0].ID)
}

func TestNotifications_ListLimits(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store)
	ctx := context.Background()
	seedNotifications(t, store, "a", 150)

	listed, err := svc.List(ctx, "a", false, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 20)

	listed, err = svc.List(ctx, "a", false, 1000)
	require.NoError(t, err)
	assert.Len(t, listed, 100)

	listed, err = svc.List(ctx, "a", false, 5)
	require.NoError(t, err)
	assert.Len(t, listed, 5)
}
