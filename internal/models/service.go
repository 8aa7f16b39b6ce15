package models

// Service is one entry in the barangay's catalog of civil documents and actions.
type Service struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(32);index" json:"category"`
	Icon        string `json:"icon"`

	Fee            float64 `gorm:"default:0" json:"fee"`
	ProcessingTime string  `json:"processing_time"`
	ValidityPeriod string  `json:"validity_period"`

	DisplayOrder      int  `gorm:"default:0" json:"display_order"`
	IsOnlineAvailable bool `gorm:"default:true" json:"is_online_available"`
	IsActive          bool `gorm:"default:true;index" json:"is_active"`

	Requirements []ServiceRequirement `gorm:"foreignKey:ServiceID" json:"requirements,omitempty"`
}

// ServiceRequirement is one document a resident must present for a service.
type ServiceRequirement struct {
	BaseModel

	ServiceID    uint   `gorm:"index;not null" json:"service_id"`
	Requirement  string `gorm:"not null" json:"requirement"`
	IsMandatory  bool   `gorm:"default:true" json:"is_mandatory"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
}
