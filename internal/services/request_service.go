package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
	"github.com/jlbernardo/barangaylink/pkg/metrics"
)

var (
	// ErrRequestNotFound indicates the referenced service request does not exist.
	ErrRequestNotFound = apperrors.New("REQUEST_NOT_FOUND", "Request not found", http.StatusNotFound)
	// ErrRequestUserNotFound indicates the submitting user does not exist or is inactive.
	ErrRequestUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	// ErrRequestServiceNotFound indicates the referenced catalog service does not exist or is inactive.
	ErrRequestServiceNotFound = apperrors.New("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
)

// CreateRequestInput describes a resident-initiated submission.
type CreateRequestInput struct {
	UserID    uint
	ServiceID uint
	Purpose   string
	Priority  string
}

// CreateRequestResult echoes the persisted request back to the submitter.
type CreateRequestResult struct {
	ID            uint      `json:"id"`
	RequestNumber string    `json:"request_number"`
	ServiceName   string    `json:"service_name"`
	Fee           float64   `json:"fee"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// UpdateRequestInput enumerates the mutable request attributes. Nil fields are
// left untouched; only fields present in the patch are written.
type UpdateRequestInput struct {
	Status          *string
	Notes           *string
	ScheduledDate   *time.Time
	PaymentStatus   *string
	ProcessedBy     *uint
	RejectionReason *string
	UpdatedBy       *uint
}

// RequestSummary is the list-view projection of a service request.
type RequestSummary struct {
	ID            uint       `json:"id"`
	RequestNumber string     `json:"request_number"`
	ServiceName   string     `json:"service_name"`
	UserName      string     `json:"user_name,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	Purpose       string     `json:"purpose"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	PaymentStatus string     `json:"payment_status"`
	Fee           float64    `json:"fee"`
	Notes         string     `json:"notes,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RequestDetail is the single-request projection including the tracking trail.
type RequestDetail struct {
	models.ServiceRequest

	ServiceName    string                   `json:"service_name"`
	Fee            float64                  `json:"fee"`
	ProcessingTime string                   `json:"processing_time"`
	UserName       string                   `json:"user_name"`
	UserEmail      string                   `json:"user_email"`
	UserPhone      string                   `json:"user_phone"`
	Tracking       []models.RequestTracking `json:"tracking"`
}

// ListRequestsOptions controls filtering and pagination for the admin list view.
type ListRequestsOptions struct {
	Status   string
	Page     int
	PageSize int
}

// RequestService owns the service request lifecycle: creation, partial updates,
// and the tracking/notification/activity fan-out both produce. Every write is a
// single all-or-nothing transaction.
type RequestService struct {
	db            *gorm.DB
	ledger        *TrackingLedger
	notifications *NotificationService
	activity      *ActivityService
	now           func() time.Time
}

// NewRequestService constructs a RequestService.
func NewRequestService(db *gorm.DB, ledger *TrackingLedger, notifications *NotificationService, activity *ActivityService) (*RequestService, error) {
	if db == nil {
		return nil, errors.New("request service: db is required")
	}
	if ledger == nil {
		return nil, errors.New("request service: tracking ledger is required")
	}
	if notifications == nil {
		return nil, errors.New("request service: notification service is required")
	}
	if activity == nil {
		return nil, errors.New("request service: activity service is required")
	}
	return &RequestService{
		db:            db,
		ledger:        ledger,
		notifications: notifications,
		activity:      activity,
		now:           time.Now,
	}, nil
}

// WithClock overrides the wall clock, primarily for tests.
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	if now != nil {
		s.now = now
	}
	return s
}

// Create validates the referenced user and service, allocates a request number
// for the current year, and persists the request together with its initial
// tracking entry, submission notification, and activity-log row. Any step
// failing aborts the whole transaction; no partial request becomes visible.
func (s *RequestService) Create(ctx context.Context, input CreateRequestInput) (*CreateRequestResult, error) {
	ctx = ensureContext(ctx)

	if input.UserID == 0 {
		return nil, apperrors.NewBadRequest("User ID and Service ID are required.")
	}
	if input.ServiceID == 0 {
		return nil, apperrors.NewBadRequest("User ID and Service ID are required.")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", input.UserID, models.UserStatusActive).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("request service: load user: %w", err)
	}

	var service models.Service
	err = s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", input.ServiceID, true).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("request service: load service: %w", err)
	}

	request := models.ServiceRequest{
		UserID:        input.UserID,
		ServiceID:     input.ServiceID,
		Purpose:       strings.TrimSpace(input.Purpose),
		Status:        models.RequestStatusPending,
		Priority:      defaultIfEmpty(strings.TrimSpace(input.Priority), models.PriorityNormal),
		PaymentStatus: models.PaymentStatusUnpaid,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextRequestNumber(tx, s.now())
		if err != nil {
			return err
		}
		request.RequestNumber = number

		if err := tx.Create(&request).Error; err != nil {
			return fmt.Errorf("request service: insert request: %w", err)
		}

		if err := s.ledger.Append(tx, request.ID, models.RequestStatusPending, "Request submitted", nil); err != nil {
			return err
		}

		message := fmt.Sprintf("Your request for %s has been submitted. Request Number: %s",
			service.Name, request.RequestNumber)
		if _, err := s.notifications.CreateTx(tx, CreateNotificationInput{
			UserID:  input.UserID,
			Type:    models.NotificationRequestSubmitted,
			Title:   "Request Submitted",
			Message: message,
			Data: map[string]any{
				"request_id":     request.ID,
				"request_number": request.RequestNumber,
			},
		}); err != nil {
			return err
		}

		recordID := request.ID
		userID := input.UserID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     &userID,
			Action:     "create_request",
			Module:     "service_requests",
			RecordID:   &recordID,
			RecordType: "service_request",
			NewValues: map[string]any{
				"request_number": request.RequestNumber,
				"service_id":     request.ServiceID,
				"status":         request.Status,
			},
		})
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict.WithMessage("Request number already allocated, please retry.").WithInternal(err)
		}
		return nil, err
	}

	metrics.RequestsSubmitted.WithLabelValues(service.Name).Inc()

	return &CreateRequestResult{
		ID:            request.ID,
		RequestNumber: request.RequestNumber,
		ServiceName:   service.Name,
		Fee:           service.Fee,
		Status:        request.Status,
		CreatedAt:     request.CreatedAt,
	}, nil
}

// Update applies a partial patch to an existing request. Fields absent from the
// patch are left untouched. A status change appends a tracking entry and, for
// the notifiable statuses, a notification to the request owner; the activity
// log always captures the old and new status. All of it commits atomically.
func (s *RequestService) Update(ctx context.Context, requestID uint, patch UpdateRequestInput) error {
	ctx = ensureContext(ctx)

	if requestID == 0 {
		return apperrors.NewBadRequest("Request ID is required.")
	}

	var request models.ServiceRequest
	err := s.db.WithContext(ctx).
		Preload("Service").
		First(&request, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("request service: load request: %w", err)
	}

	oldStatus := request.Status
	now := s.now()

	updates := map[string]any{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
		if *patch.Status == models.RequestStatusCompleted {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			updates["completed_date"] = today
		}
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.ScheduledDate != nil {
		updates["scheduled_date"] = *patch.ScheduledDate
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = *patch.PaymentStatus
		if *patch.PaymentStatus == models.PaymentStatusPaid {
			updates["payment_date"] = now
		}
	}
	if patch.ProcessedBy != nil {
		updates["processed_by"] = *patch.ProcessedBy
	}
	if patch.RejectionReason != nil {
		updates["rejection_reason"] = *patch.RejectionReason
	}
	updates["updated_at"] = now

	statusChanged := patch.Status != nil && *patch.Status != oldStatus

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ServiceRequest{}).
			Where("id = ?", requestID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("request service: apply patch: %w", err)
		}

		if statusChanged {
			newStatus := *patch.Status

			remarks := fmt.Sprintf("Status updated to %s", capitalise(newStatus))
			if patch.Notes != nil && strings.TrimSpace(*patch.Notes) != "" {
				remarks = *patch.Notes
			}
			if err := s.ledger.Append(tx, requestID, newStatus, remarks, patch.UpdatedBy); err != nil {
				return err
			}

			if message, ok := statusNotification(newStatus, request.Service.Name, patch.RejectionReason); ok {
				if _, err := s.notifications.CreateTx(tx, CreateNotificationInput{
					UserID:  request.UserID,
					Type:    "request_" + newStatus,
					Title:   "Request " + capitalise(newStatus),
					Message: message,
					Data: map[string]any{
						"request_id":     request.ID,
						"request_number": request.RequestNumber,
					},
				}); err != nil {
					return err
				}
			}
		}

		newStatus := oldStatus
		if patch.Status != nil {
			newStatus = *patch.Status
		}
		recordID := request.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     patch.UpdatedBy,
			Action:     "update_request",
			Module:     "service_requests",
			RecordID:   &recordID,
			RecordType: "service_request",
			OldValues:  map[string]any{"status": oldStatus},
			NewValues:  map[string]any{"status": newStatus},
		})
	})
	if err != nil {
		return err
	}

	if statusChanged {
		metrics.StatusTransitions.WithLabelValues(*patch.Status).Inc()
	}
	return nil
}

// statusNotification returns the resident-facing message for a notifiable
// status, or ok=false for statuses that only produce a tracking entry.
func statusNotification(status, serviceName string, rejectionReason *string) (string, bool) {
	switch status {
	case models.RequestStatusProcessing:
		return fmt.Sprintf("Your request for %s is now being processed.", serviceName), true
	case models.RequestStatusForPickup:
		return fmt.Sprintf("Your %s is ready for pickup at the Barangay Hall.", serviceName), true
	case models.RequestStatusCompleted:
		return fmt.Sprintf("Your request for %s has been completed.", serviceName), true
	case models.RequestStatusRejected:
		reason := "N/A"
		if rejectionReason != nil && strings.TrimSpace(*rejectionReason) != "" {
			reason = *rejectionReason
		}
		return fmt.Sprintf("Your request for %s has been rejected. Reason: %s", serviceName, reason), true
	default:
		return "", false
	}
}

// GetByID loads a single request with its service, requester, and tracking history.
func (s *RequestService) GetByID(ctx context.Context, requestID uint) (*RequestDetail, error) {
	ctx = ensureContext(ctx)

	var request models.ServiceRequest
	err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("User.Profile").
		First(&request, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("request service: load request: %w", err)
	}

	tracking, err := s.ledger.History(ctx, requestID)
	if err != nil {
		return nil, err
	}

	detail := RequestDetail{
		ServiceRequest: request,
		ServiceName:    request.Service.Name,
		Fee:            request.Service.Fee,
		ProcessingTime: request.Service.ProcessingTime,
		UserEmail:      request.User.Email,
		Tracking:       tracking,
	}
	if profile := request.User.Profile; profile != nil {
		detail.UserName = profile.FullName()
		detail.UserPhone = defaultIfEmpty(profile.Phone, profile.Mobile)
	}

	return &detail, nil
}

// ListForUser returns all requests belonging to one user, newest first.
func (s *RequestService) ListForUser(ctx context.Context, userID uint) ([]RequestSummary, error) {
	ctx = ensureContext(ctx)

	var rows []models.ServiceRequest
	if err := s.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("request service: list user requests: %w", err)
	}

	summaries := make([]RequestSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summariseRequest(row, false))
	}
	return summaries, nil
}

// List returns the admin view of requests with optional status filter and pagination.
func (s *RequestService) List(ctx context.Context, opts ListRequestsOptions) ([]RequestSummary, int64, error) {
	ctx = ensureContext(ctx)

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PageSize
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := s.db.WithContext(ctx).Model(&models.ServiceRequest{})
	if opts.Status != "" && opts.Status != "all" {
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("request service: count requests: %w", err)
	}

	var rows []models.ServiceRequest
	if err := query.
		Preload("Service").
		Preload("User.Profile").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("request service: list requests: %w", err)
	}

	summaries := make([]RequestSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summariseRequest(row, true))
	}
	return summaries, total, nil
}

func summariseRequest(row models.ServiceRequest, includeUser bool) RequestSummary {
	summary := RequestSummary{
		ID:            row.ID,
		RequestNumber: row.RequestNumber,
		ServiceName:   row.Service.Name,
		Purpose:       row.Purpose,
		Status:        row.Status,
		Priority:      row.Priority,
		PaymentStatus: row.PaymentStatus,
		Fee:           row.Service.Fee,
		ScheduledDate: row.ScheduledDate,
		CreatedAt:     row.CreatedAt,
	}

	if includeUser {
		summary.UserEmail = row.User.Email
		summary.Notes = row.Notes
		if profile := row.User.Profile; profile != nil {
			summary.UserName = profile.FullName()
		}
	}
	return summary
}
