package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
)

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalRequests int64 `json:"total_requests"`

	RequestsByStatus map[string]int64 `json:"requests_by_status"`
	RequestsToday    int64            `json:"requests_today"`
	RequestsThisWeek int64            `json:"requests_this_week"`
	RequestsMonth    int64            `json:"requests_this_month"`

	CollectedRevenue float64 `json:"collected_revenue"`

	PublishedAnnouncements int64 `json:"published_announcements"`
	UnreadMessages         int64 `json:"unread_messages"`
}

// DashboardService computes the admin overview numbers.
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(db *gorm.DB) (*DashboardService, error) {
	if db == nil {
		return nil, errors.New("dashboard service: db is required")
	}
	return &DashboardService{db: db, now: time.Now}, nil
}

// Stats runs the aggregate queries behind the admin dashboard.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	ctx = ensureContext(ctx)
	db := s.db.WithContext(ctx)

	stats := DashboardStats{RequestsByStatus: map[string]int64{}}

	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count users: %w", err)
	}

	if err := db.Model(&models.ServiceRequest{}).
		Count(&stats.TotalRequests).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count requests: %w", err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	if err := db.Model(&models.ServiceRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("dashboard: group requests: %w", err)
	}
	for _, row := range byStatus {
		stats.RequestsByStatus[row.Status] = row.Count
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int((now.Weekday()+6)%7))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if err := db.Model(&models.ServiceRequest{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.RequestsToday).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count today: %w", err)
	}
	if err := db.Model(&models.ServiceRequest{}).
		Where("created_at >= ?", startOfWeek).
		Count(&stats.RequestsThisWeek).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count week: %w", err)
	}
	if err := db.Model(&models.ServiceRequest{}).
		Where("created_at >= ?", startOfMonth).
		Count(&stats.RequestsMonth).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count month: %w", err)
	}

	var revenue *float64
	if err := db.Model(&models.ServiceRequest{}).
		Select("SUM(services.fee)").
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("service_requests.payment_status = ?", models.PaymentStatusPaid).
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("dashboard: sum revenue: %w", err)
	}
	if revenue != nil {
		stats.CollectedRevenue = *revenue
	}

	if err := db.Model(&models.Announcement{}).
		Where("is_published = ?", true).
		Count(&stats.PublishedAnnouncements).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count announcements: %w", err)
	}

	if err := db.Model(&models.ContactMessage{}).
		Where("status = ?", models.ContactStatusUnread).
		Count(&stats.UnreadMessages).Error; err != nil {
		return nil, fmt.Errorf("dashboard: count unread messages: %w", err)
	}

	return &stats, nil
}
