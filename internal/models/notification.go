package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types emitted by the request lifecycle and the public site.
const (
	NotificationWelcome        = "welcome"
	NotificationContactMessage = "contact_message"

	NotificationRequestSubmitted  = "request_submitted"
	NotificationRequestProcessing = "request_processing"
	NotificationRequestForPickup  = "request_for_pickup"
	NotificationRequestCompleted  = "request_completed"
	NotificationRequestRejected   = "request_rejected"
)

// Notification is a stored, user-facing message tied to a lifecycle event. It is
// written in the same transaction as the event and consumed by a polling read
// path; there is no delivery guarantee beyond durable storage.
type Notification struct {
	BaseModel

	UserID  uint           `gorm:"index;not null" json:"user_id"`
	Type    string         `gorm:"type:varchar(64);not null" json:"type"`
	Title   string         `gorm:"type:varchar(255);not null" json:"title"`
	Message string         `gorm:"type:text" json:"message"`
	Data    datatypes.JSON `json:"data"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}
