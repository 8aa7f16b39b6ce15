package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jlbernardo/barangaylink/internal/auditctx"
	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
)

func TestActivityServiceRecord(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewActivityService(db)
	require.NoError(t, err)

	userID := uint(42)
	recordID := uint(7)
	err = svc.Record(context.Background(), ActivityEntry{
		UserID:     &userID,
		Action:     "update_request",
		Module:     "service_requests",
		RecordID:   &recordID,
		RecordType: "service_request",
		OldValues:  map[string]any{"status": "pending"},
		NewValues:  map[string]any{"status": "processing"},
		IPAddress:  "203.0.113.9",
		UserAgent:  "test-agent",
	})
	require.NoError(t, err)

	var row models.ActivityLog
	require.NoError(t, db.First(&row).Error)
	require.Equal(t, "update_request", row.Action)
	require.Equal(t, "service_requests", row.Module)
	require.NotNil(t, row.UserID)
	require.Equal(t, userID, *row.UserID)
	require.JSONEq(t, `{"status":"pending"}`, string(row.OldValues))
	require.JSONEq(t, `{"status":"processing"}`, string(row.NewValues))
	require.Equal(t, "203.0.113.9", row.IPAddress)
}

func TestActivityServiceRecordPullsActorFromContext(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewActivityService(db)
	require.NoError(t, err)

	userID := uint(3)
	ctx := auditctx.WithActor(context.Background(), auditctx.Actor{
		UserID:    &userID,
		IPAddress: "198.51.100.1",
		UserAgent: "portal-spa",
	})

	require.NoError(t, svc.Record(ctx, ActivityEntry{Action: "login", Module: "users"}))

	var row models.ActivityLog
	require.NoError(t, db.First(&row).Error)
	require.NotNil(t, row.UserID)
	require.Equal(t, userID, *row.UserID)
	require.Equal(t, "198.51.100.1", row.IPAddress)
	require.Equal(t, "portal-spa", row.UserAgent)
}

func TestActivityServiceRecordValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewActivityService(db)
	require.NoError(t, err)

	require.Error(t, svc.Record(context.Background(), ActivityEntry{Module: "users"}))
	require.Error(t, svc.Record(context.Background(), ActivityEntry{Action: "login"}))
}

func TestActivityServiceListFilters(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewActivityService(db)
	require.NoError(t, err)

	ctx := context.Background()
	alice := uint(1)
	bob := uint(2)
	require.NoError(t, svc.Record(ctx, ActivityEntry{UserID: &alice, Action: "login", Module: "users"}))
	require.NoError(t, svc.Record(ctx, ActivityEntry{UserID: &alice, Action: "create_request", Module: "service_requests"}))
	require.NoError(t, svc.Record(ctx, ActivityEntry{UserID: &bob, Action: "login", Module: "users"}))

	logins, total, err := svc.List(ctx, ActivityListOptions{Filters: ActivityFilters{Action: "login"}})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, logins, 2)

	aliceOnly, total, err := svc.List(ctx, ActivityListOptions{Filters: ActivityFilters{UserID: &alice}})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, aliceOnly, 2)

	requests, total, err := svc.List(ctx, ActivityListOptions{Filters: ActivityFilters{Module: "service_requests"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "create_request", requests[0].Action)
}

func TestActivityServiceCleanupOlderThan(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewActivityService(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Record(ctx, ActivityEntry{Action: "login", Module: "users"}))
	require.NoError(t, svc.Record(ctx, ActivityEntry{Action: "login", Module: "users"}))

	// Age one row beyond the retention window.
	stale := time.Now().AddDate(0, 0, -400)
	var first models.ActivityLog
	require.NoError(t, db.Order("id ASC").First(&first).Error)
	require.NoError(t, db.Model(&models.ActivityLog{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", stale).Error)

	removed, err := svc.CleanupOlderThan(ctx, 365)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	var count int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	_, err = svc.CleanupOlderThan(ctx, 0)
	require.Error(t, err)
}
