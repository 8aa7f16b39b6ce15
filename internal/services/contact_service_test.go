package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/auditctx"
	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

func newContactService(t *testing.T, db *gorm.DB) *ContactService {
	t.Helper()

	notifications, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewContactService(db, notifications)
	require.NoError(t, err)
	return svc
}

func createStaffUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{Email: email, Password: "placeholder", Role: role, Status: models.UserStatusActive}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestContactServiceSubmit(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newContactService(t, db)

	staff := createStaffUser(t, db, "staff@example.com", models.RoleStaff)
	admin := createStaffUser(t, db, "admin@example.com", models.RoleAdmin)
	resident := createTestUser(t, db, "resident@example.com")
	inactive := models.User{Email: "gone@example.com", Password: "x", Role: models.RoleStaff, Status: models.UserStatusInactive}
	require.NoError(t, db.Create(&inactive).Error)

	ctx := auditctx.WithActor(context.Background(), auditctx.Actor{
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	})

	result, err := svc.Submit(ctx, ContactInput{
		Name:    "Maria Santos",
		Email:   "maria@example.com",
		Message: "When is the next barangay assembly?",
	})
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(result.ReferenceNumber))

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, "reference_number = ?", result.ReferenceNumber).Error)
	require.Equal(t, "Maria Santos", stored.Name)
	require.Equal(t, "General Inquiry", stored.Subject)
	require.Equal(t, models.ContactStatusUnread, stored.Status)
	require.Equal(t, "203.0.113.7", stored.IPAddress)
	require.Equal(t, "test-agent", stored.UserAgent)

	// Only active staff and admin accounts are alerted.
	var recipients []uint
	require.NoError(t, db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationContactMessage).
		Order("user_id").
		Pluck("user_id", &recipients).Error)
	require.ElementsMatch(t, []uint{staff.ID, admin.ID}, recipients)
	require.NotContains(t, recipients, resident.ID)
	require.NotContains(t, recipients, inactive.ID)

	var alert models.Notification
	require.NoError(t, db.Where("user_id = ?", staff.ID).First(&alert).Error)
	require.Equal(t, "New Contact Message", alert.Title)
	require.Equal(t, "Maria Santos sent a message: General Inquiry", alert.Message)
}

func TestContactServiceSubmitValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newContactService(t, db)

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Maria", Email: "", Message: "hello"})
	require.Error(t, err)
	require.Equal(t, 400, apperrors.FromError(err).StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestContactServiceList(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newContactService(t, db)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := svc.Submit(ctx, ContactInput{Name: name, Email: name + "@example.com", Message: "hi"})
		require.NoError(t, err)
	}

	messages, total, err := svc.List(ctx, ListMessagesOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, messages, 3)

	require.NoError(t, svc.MarkStatus(ctx, messages[0].ID, models.ContactStatusRead))

	unread, total, err := svc.List(ctx, ListMessagesOptions{Status: models.ContactStatusUnread})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, unread, 2)

	paged, total, err := svc.List(ctx, ListMessagesOptions{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, paged, 1)
}

func TestContactServiceMarkStatus(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newContactService(t, db)
	ctx := context.Background()

	result, err := svc.Submit(ctx, ContactInput{Name: "Maria", Email: "maria@example.com", Message: "hi"})
	require.NoError(t, err)

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, "reference_number = ?", result.ReferenceNumber).Error)

	require.NoError(t, svc.MarkStatus(ctx, stored.ID, models.ContactStatusArchived))
	require.NoError(t, db.First(&stored, "id = ?", stored.ID).Error)
	require.Equal(t, models.ContactStatusArchived, stored.Status)

	err = svc.MarkStatus(ctx, stored.ID, "spam")
	require.Error(t, err)
	require.Equal(t, 400, apperrors.FromError(err).StatusCode)

	err = svc.MarkStatus(ctx, 9999, models.ContactStatusRead)
	require.Error(t, err)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
}
