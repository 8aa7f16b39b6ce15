package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

// OfficialInput captures an elected or appointed barangay official.
type OfficialInput struct {
	Name          string
	Position      string
	Committee     string
	TermStart     *time.Time
	TermEnd       *time.Time
	ContactNumber string
	Email         string
	Address       string
	Photo         string
	Bio           string
	PositionOrder int
	IsActive      *bool
}

// OfficialService manages the public roster of barangay officials.
type OfficialService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewOfficialService constructs an OfficialService.
func NewOfficialService(db *gorm.DB, activity *ActivityService) (*OfficialService, error) {
	if db == nil {
		return nil, errors.New("official service: db is required")
	}
	if activity == nil {
		return nil, errors.New("official service: activity service is required")
	}
	return &OfficialService{db: db, activity: activity}, nil
}

// ListActive returns the active roster ordered by rank.
func (s *OfficialService) ListActive(ctx context.Context) ([]models.Official, error) {
	ctx = ensureContext(ctx)

	var officials []models.Official
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position_order ASC, name ASC").
		Find(&officials).Error; err != nil {
		return nil, fmt.Errorf("official service: list: %w", err)
	}
	return officials, nil
}

// Create adds an official to the roster.
func (s *OfficialService) Create(ctx context.Context, input OfficialInput, createdBy *uint) (*models.Official, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	position := strings.TrimSpace(input.Position)
	if name == "" || position == "" {
		return nil, apperrors.NewBadRequest("Name and position are required.")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	official := models.Official{
		Name:          name,
		Position:      position,
		Committee:     strings.TrimSpace(input.Committee),
		TermStart:     input.TermStart,
		TermEnd:       input.TermEnd,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Address:       input.Address,
		Photo:         input.Photo,
		Bio:           input.Bio,
		PositionOrder: input.PositionOrder,
		IsActive:      active,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&official).Error; err != nil {
			return fmt.Errorf("official service: insert: %w", err)
		}

		recordID := official.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     createdBy,
			Action:     "create_official",
			Module:     "officials",
			RecordID:   &recordID,
			RecordType: "official",
			NewValues:  map[string]any{"name": official.Name, "position": official.Position},
		})
	})
	if err != nil {
		return nil, err
	}
	return &official, nil
}

// Update replaces an official's record.
func (s *OfficialService) Update(ctx context.Context, id uint, input OfficialInput, updatedBy *uint) (*models.Official, error) {
	ctx = ensureContext(ctx)

	var official models.Official
	err := s.db.WithContext(ctx).First(&official, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Official not found")
	}
	if err != nil {
		return nil, fmt.Errorf("official service: load: %w", err)
	}

	updates := map[string]any{
		"name":           strings.TrimSpace(input.Name),
		"position":       strings.TrimSpace(input.Position),
		"committee":      strings.TrimSpace(input.Committee),
		"term_start":     input.TermStart,
		"term_end":       input.TermEnd,
		"contact_number": input.ContactNumber,
		"email":          input.Email,
		"address":        input.Address,
		"photo":          input.Photo,
		"bio":            input.Bio,
		"position_order": input.PositionOrder,
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&official).Updates(updates).Error; err != nil {
			return fmt.Errorf("official service: apply update: %w", err)
		}

		recordID := official.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     updatedBy,
			Action:     "update_official",
			Module:     "officials",
			RecordID:   &recordID,
			RecordType: "official",
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&official, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("official service: reload: %w", err)
	}
	return &official, nil
}

// Deactivate retires an official from the public roster without deleting the row.
func (s *OfficialService) Deactivate(ctx context.Context, id uint, updatedBy *uint) error {
	ctx = ensureContext(ctx)

	var official models.Official
	err := s.db.WithContext(ctx).First(&official, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound("Official not found")
	}
	if err != nil {
		return fmt.Errorf("official service: load: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&official).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("official service: deactivate: %w", err)
		}

		recordID := official.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     updatedBy,
			Action:     "deactivate_official",
			Module:     "officials",
			RecordID:   &recordID,
			RecordType: "official",
		})
	})
}
