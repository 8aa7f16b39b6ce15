package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the system-wide, append-only audit trail of mutating actions.
// Old/new value snapshots are stored as opaque JSON.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Action string `gorm:"not null;index" json:"action"`
	Module string `gorm:"not null;index" json:"module"`

	RecordID   *uint  `json:"record_id"`
	RecordType string `gorm:"type:varchar(64)" json:"record_type"`

	OldValues datatypes.JSON `json:"old_values"`
	NewValues datatypes.JSON `json:"new_values"`

	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
