package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

// CatalogService serves the public catalog of barangay services.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB) (*CatalogService, error) {
	if db == nil {
		return nil, errors.New("catalog service: db is required")
	}
	return &CatalogService{db: db}, nil
}

// ListActive returns active services with their requirements, ordered for display.
func (s *CatalogService) ListActive(ctx context.Context, category string) ([]models.Service, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("is_active = ?", true)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("display_order ASC, name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("catalog service: list services: %w", err)
	}
	return services, nil
}

// GetBySlug returns one active service with its requirements.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	ctx = ensureContext(ctx)

	var service models.Service
	err := s.db.WithContext(ctx).
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Service not found")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog service: load service: %w", err)
	}
	return &service, nil
}
