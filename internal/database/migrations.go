package database

import (
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Service{},
		&models.ServiceRequirement{},
		&models.ServiceRequest{},
		&models.RequestSequence{},
		&models.RequestTracking{},
		&models.Notification{},
		&models.ActivityLog{},
		&models.Announcement{},
		&models.Official{},
		&models.ContactMessage{},
	)
}

// SeedData populates the default services catalog. Seeding is idempotent: rows
// are keyed by slug and only inserted when absent.
func SeedData(db *gorm.DB) error {
	services := []models.Service{
		{
			Name:           "Barangay Clearance",
			Slug:           "barangay-clearance",
			Description:    "Certifies that the requester is a resident of good standing.",
			Category:       "certificate",
			Icon:           "file-check",
			Fee:            50.00,
			ProcessingTime: "1-2 working days",
			ValidityPeriod: "6 months",
			DisplayOrder:   1,
			Requirements: []models.ServiceRequirement{
				{Requirement: "Valid government-issued ID", IsMandatory: true, DisplayOrder: 1},
				{Requirement: "Proof of residency", IsMandatory: true, DisplayOrder: 2},
			},
		},
		{
			Name:           "Certificate of Residency",
			Slug:           "certificate-of-residency",
			Description:    "Certifies that the requester resides within the barangay.",
			Category:       "certificate",
			Icon:           "home",
			Fee:            30.00,
			ProcessingTime: "1 working day",
			ValidityPeriod: "6 months",
			DisplayOrder:   2,
			Requirements: []models.ServiceRequirement{
				{Requirement: "Valid government-issued ID", IsMandatory: true, DisplayOrder: 1},
			},
		},
		{
			Name:           "Certificate of Indigency",
			Slug:           "certificate-of-indigency",
			Description:    "Certifies indigent status for medical, educational, or legal assistance.",
			Category:       "certificate",
			Icon:           "heart-handshake",
			Fee:            0,
			ProcessingTime: "1-2 working days",
			ValidityPeriod: "3 months",
			DisplayOrder:   3,
			Requirements: []models.ServiceRequirement{
				{Requirement: "Valid government-issued ID", IsMandatory: true, DisplayOrder: 1},
				{Requirement: "Sworn statement of income", IsMandatory: false, DisplayOrder: 2},
			},
		},
		{
			Name:           "Barangay Business Clearance",
			Slug:           "barangay-business-clearance",
			Description:    "Clearance required before a business permit is issued within the barangay.",
			Category:       "permit",
			Icon:           "briefcase",
			Fee:            500.00,
			ProcessingTime: "3-5 working days",
			ValidityPeriod: "1 year",
			DisplayOrder:   4,
			Requirements: []models.ServiceRequirement{
				{Requirement: "DTI or SEC registration", IsMandatory: true, DisplayOrder: 1},
				{Requirement: "Lease contract or proof of ownership", IsMandatory: true, DisplayOrder: 2},
				{Requirement: "Sketch of business location", IsMandatory: false, DisplayOrder: 3},
			},
		},
		{
			Name:           "Barangay ID",
			Slug:           "barangay-id",
			Description:    "Identification card for registered residents.",
			Category:       "identification",
			Icon:           "id-card",
			Fee:            100.00,
			ProcessingTime: "5-7 working days",
			ValidityPeriod: "1 year",
			DisplayOrder:   5,
			Requirements: []models.ServiceRequirement{
				{Requirement: "Proof of residency", IsMandatory: true, DisplayOrder: 1},
				{Requirement: "1x1 photo", IsMandatory: true, DisplayOrder: 2},
			},
		},
	}

	for _, service := range services {
		var existing models.Service
		err := db.Where("slug = ?", service.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&service).Error; err != nil {
			return err
		}
	}

	return nil
}
