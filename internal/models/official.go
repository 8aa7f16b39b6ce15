package models

import "time"

// Official is one elected or appointed barangay official shown on the site.
type Official struct {
	BaseModel

	Name      string `gorm:"not null" json:"name"`
	Position  string `gorm:"not null" json:"position"`
	Committee string `json:"committee"`

	TermStart *time.Time `json:"term_start"`
	TermEnd   *time.Time `json:"term_end"`

	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Photo         string `json:"photo"`
	Bio           string `gorm:"type:text" json:"bio"`

	PositionOrder int  `gorm:"default:0" json:"position_order"`
	IsActive      bool `gorm:"default:true;index" json:"is_active"`
}
