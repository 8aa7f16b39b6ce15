package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/auditctx"
	"github.com/jlbernardo/barangaylink/internal/models"
)

// ActivityEntry captures a single mutating action to persist in the activity log.
type ActivityEntry struct {
	UserID     *uint
	Action     string
	Module     string
	RecordID   *uint
	RecordType string
	OldValues  map[string]any
	NewValues  map[string]any
	IPAddress  string
	UserAgent  string
}

// ActivityFilters encapsulates optional filters when querying the activity log.
type ActivityFilters struct {
	UserID *uint
	Action string
	Module string
	Since  *time.Time
	Until  *time.Time
}

// ActivityListOptions controls pagination and filtering for activity queries.
type ActivityListOptions struct {
	Page     int
	PageSize int
	Filters  ActivityFilters
}

// ActivityService persists and retrieves the system-wide audit trail.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService constructs an ActivityService using the provided database handle.
func NewActivityService(db *gorm.DB) (*ActivityService, error) {
	if db == nil {
		return nil, errors.New("activity service: db is required")
	}
	return &ActivityService{db: db}, nil
}

// Record stores an activity entry outside any caller-managed transaction.
func (s *ActivityService) Record(ctx context.Context, entry ActivityEntry) error {
	ctx = ensureContext(ctx)
	return s.RecordTx(s.db.WithContext(ctx), entry)
}

// RecordTx stores an activity entry using the supplied handle, which may be a
// transaction so the log row commits or rolls back with the primary write.
// Actor metadata missing from the entry is taken from the handle's context.
func (s *ActivityService) RecordTx(tx *gorm.DB, entry ActivityEntry) error {
	if tx == nil {
		return errors.New("activity service: tx is required")
	}
	if strings.TrimSpace(entry.Action) == "" {
		return errors.New("activity service: action is required")
	}
	if strings.TrimSpace(entry.Module) == "" {
		return errors.New("activity service: module is required")
	}

	if actor, ok := auditctx.FromContext(tx.Statement.Context); ok {
		if entry.UserID == nil {
			entry.UserID = actor.UserID
		}
		if entry.IPAddress == "" {
			entry.IPAddress = actor.IPAddress
		}
		if entry.UserAgent == "" {
			entry.UserAgent = actor.UserAgent
		}
	}

	row := models.ActivityLog{
		UserID:     entry.UserID,
		Action:     strings.TrimSpace(entry.Action),
		Module:     strings.TrimSpace(entry.Module),
		RecordID:   entry.RecordID,
		RecordType: strings.TrimSpace(entry.RecordType),
		IPAddress:  strings.TrimSpace(entry.IPAddress),
		UserAgent:  strings.TrimSpace(entry.UserAgent),
	}

	if entry.OldValues != nil {
		encoded, err := json.Marshal(entry.OldValues)
		if err != nil {
			return fmt.Errorf("activity service: marshal old values: %w", err)
		}
		row.OldValues = datatypes.JSON(encoded)
	}
	if entry.NewValues != nil {
		encoded, err := json.Marshal(entry.NewValues)
		if err != nil {
			return fmt.Errorf("activity service: marshal new values: %w", err)
		}
		row.NewValues = datatypes.JSON(encoded)
	}

	return tx.Create(&row).Error
}

// List returns paginated activity logs ordered by creation time descending.
func (s *ActivityService) List(ctx context.Context, opts ActivityListOptions) ([]models.ActivityLog, int64, error) {
	ctx = ensureContext(ctx)

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PageSize
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}

	var (
		results []models.ActivityLog
		total   int64
	)

	query := s.db.WithContext(ctx).Model(&models.ActivityLog{})
	query = applyActivityFilters(query, opts.Filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("activity service: count logs: %w", err)
	}

	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("activity service: list logs: %w", err)
	}

	return results, total, nil
}

// CleanupOlderThan removes activity logs older than the supplied retention window (in days).
func (s *ActivityService) CleanupOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	ctx = ensureContext(ctx)

	if retentionDays <= 0 {
		return 0, errors.New("activity service: retentionDays must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("activity service: cleanup logs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func applyActivityFilters(query *gorm.DB, filters ActivityFilters) *gorm.DB {
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if filters.Module != "" {
		query = query.Where("module = ?", filters.Module)
	}
	if filters.Since != nil {
		query = query.Where("created_at >= ?", *filters.Since)
	}
	if filters.Until != nil {
		query = query.Where("created_at <= ?", *filters.Until)
	}
	return query
}
