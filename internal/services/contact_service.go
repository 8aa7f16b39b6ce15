package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/auditctx"
	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

// ContactInput is a message submitted through the public contact form.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ContactResult echoes the stored reference number back to the sender.
type ContactResult struct {
	ReferenceNumber string `json:"reference_number"`
}

// ContactService stores contact-form submissions and alerts staff accounts.
type ContactService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewContactService constructs a ContactService.
func NewContactService(db *gorm.DB, notifications *NotificationService) (*ContactService, error) {
	if db == nil {
		return nil, errors.New("contact service: db is required")
	}
	if notifications == nil {
		return nil, errors.New("contact service: notification service is required")
	}
	return &ContactService{db: db, notifications: notifications}, nil
}

// Submit stores the message under a fresh reference number and fans out a
// notification to every staff and admin account, all in one transaction.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*ContactResult, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, apperrors.NewBadRequest("Name, email, and message are required.")
	}

	record := models.ContactMessage{
		ReferenceNumber: uuid.NewString(),
		Name:            name,
		Email:           email,
		Phone:           strings.TrimSpace(input.Phone),
		Subject:         defaultIfEmpty(strings.TrimSpace(input.Subject), "General Inquiry"),
		Message:         message,
		Status:          models.ContactStatusUnread,
	}
	if actor, ok := auditctx.FromContext(ctx); ok {
		record.IPAddress = actor.IPAddress
		record.UserAgent = actor.UserAgent
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("contact service: insert message: %w", err)
		}

		var staffIDs []uint
		if err := tx.Model(&models.User{}).
			Where("role IN ? AND status = ?", []string{models.RoleStaff, models.RoleAdmin}, models.UserStatusActive).
			Pluck("id", &staffIDs).Error; err != nil {
			return fmt.Errorf("contact service: load staff: %w", err)
		}

		for _, staffID := range staffIDs {
			if _, err := s.notifications.CreateTx(tx, CreateNotificationInput{
				UserID:  staffID,
				Type:    models.NotificationContactMessage,
				Title:   "New Contact Message",
				Message: fmt.Sprintf("%s sent a message: %s", record.Name, record.Subject),
				Data: map[string]any{
					"reference_number": record.ReferenceNumber,
					"email":            record.Email,
				},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ContactResult{ReferenceNumber: record.ReferenceNumber}, nil
}

// ListMessagesOptions filters the staff inbox.
type ListMessagesOptions struct {
	Status   string
	Page     int
	PageSize int
}

// List returns contact messages for the staff inbox, newest first.
func (s *ContactService) List(ctx context.Context, opts ListMessagesOptions) ([]models.ContactMessage, int64, error) {
	ctx = ensureContext(ctx)

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PageSize
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := s.db.WithContext(ctx).Model(&models.ContactMessage{})
	if opts.Status != "" && opts.Status != "all" {
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("contact service: count: %w", err)
	}

	var messages []models.ContactMessage
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("contact service: list: %w", err)
	}
	return messages, total, nil
}

// MarkStatus moves a message between unread, read, and archived.
func (s *ContactService) MarkStatus(ctx context.Context, id uint, status string) error {
	ctx = ensureContext(ctx)

	switch status {
	case models.ContactStatusUnread, models.ContactStatusRead, models.ContactStatusArchived:
	default:
		return apperrors.NewBadRequest("Invalid message status.")
	}

	result := s.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("contact service: update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Message not found")
	}
	return nil
}
