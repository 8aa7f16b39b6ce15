package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
)

func TestNotificationServiceCreateAndList(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	user := createTestUser(t, db, "alice@example.com")

	svc, err := NewNotificationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := svc.Create(ctx, CreateNotificationInput{
		UserID:  user.ID,
		Type:    models.NotificationRequestSubmitted,
		Title:   "Request Submitted",
		Message: "Your request for Barangay Clearance has been submitted. Request Number: REQ-2024-0001",
		Data:    map[string]any{"request_id": 1, "request_number": "REQ-2024-0001"},
	})
	require.NoError(t, err)
	require.Equal(t, models.NotificationRequestSubmitted, created.Type)
	require.False(t, created.IsRead)

	items, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, created.ID, items[0].ID)
	require.JSONEq(t, `{"request_id":1,"request_number":"REQ-2024-0001"}`, string(items[0].Data))
}

func TestNotificationServiceUnreadFilterAndCount(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	user := createTestUser(t, db, "alice@example.com")

	svc, err := NewNotificationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Type: models.NotificationWelcome, Title: "Welcome"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Type: models.NotificationRequestProcessing, Title: "Request Processing"})
	require.NoError(t, err)

	read, err := svc.MarkRead(ctx, user.ID, first.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	unread, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Unread: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)

	count, err := svc.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestNotificationServiceMarkReadIsScopedToOwner(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	svc, err := NewNotificationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := svc.Create(ctx, CreateNotificationInput{UserID: alice.ID, Type: models.NotificationWelcome, Title: "Welcome"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, bob.ID, created.ID)
	require.Error(t, err)
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	user := createTestUser(t, db, "alice@example.com")

	svc, err := NewNotificationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Type: models.NotificationWelcome, Title: "Welcome"})
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(ctx, user.ID))

	count, err := svc.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestNotificationServiceCleanupRead(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	user := createTestUser(t, db, "alice@example.com")

	svc, err := NewNotificationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	old, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Type: models.NotificationWelcome, Title: "Welcome"})
	require.NoError(t, err)
	_, err = svc.MarkRead(ctx, user.ID, old.ID)
	require.NoError(t, err)

	// Age the read notification beyond the retention window.
	stale := time.Now().AddDate(0, 0, -120)
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", stale).Error)

	fresh, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Type: models.NotificationWelcome, Title: "Welcome"})
	require.NoError(t, err)

	removed, err := svc.CleanupRead(ctx, 90)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, fresh.ID, remaining[0].ID)
}
