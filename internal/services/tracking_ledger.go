package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
)

// TrackingLedger appends and reads the immutable status trail of service
// requests. Entries are only ever inserted; there is no update or delete path.
type TrackingLedger struct {
	db *gorm.DB
}

// NewTrackingLedger constructs a TrackingLedger.
func NewTrackingLedger(db *gorm.DB) (*TrackingLedger, error) {
	if db == nil {
		return nil, errors.New("tracking ledger: db is required")
	}
	return &TrackingLedger{db: db}, nil
}

// Append inserts one tracking entry using the supplied handle, which is expected
// to be the transaction of the lifecycle event producing the entry.
func (l *TrackingLedger) Append(tx *gorm.DB, requestID uint, status, remarks string, updatedBy *uint) error {
	if tx == nil {
		return errors.New("tracking ledger: tx is required")
	}
	if requestID == 0 {
		return errors.New("tracking ledger: request id is required")
	}
	if strings.TrimSpace(status) == "" {
		return errors.New("tracking ledger: status is required")
	}

	entry := models.RequestTracking{
		RequestID: requestID,
		Status:    status,
		Remarks:   remarks,
		UpdatedBy: updatedBy,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("tracking ledger: append entry: %w", err)
	}
	return nil
}

// History returns the tracking trail for a request, newest first. Entries
// written within the same transaction share a timestamp, so the row id breaks
// ties to keep the order stable.
func (l *TrackingLedger) History(ctx context.Context, requestID uint) ([]models.RequestTracking, error) {
	ctx = ensureContext(ctx)

	var entries []models.RequestTracking
	if err := l.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("tracking ledger: load history: %w", err)
	}
	return entries, nil
}
