package models

import "time"

// Request lifecycle statuses. Pending is initial; completed and rejected are
// terminal. Transitions are not enforced at the storage layer, but notification
// fan-out is defined only for these values.
const (
	RequestStatusPending    = "pending"
	RequestStatusProcessing = "processing"
	RequestStatusForPickup  = "for_pickup"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)

// Payment statuses tracked independently of the lifecycle status.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Request priorities.
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

// ServiceRequest is one resident's application for one catalog service. Requests
// are never hard-deleted; every status change appends a RequestTracking row.
type ServiceRequest struct {
	BaseModel

	RequestNumber string `gorm:"uniqueIndex;not null" json:"request_number"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ServiceID uint    `gorm:"index;not null" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID" json:"-"`

	Purpose string `gorm:"type:text" json:"purpose"`

	Status        string `gorm:"type:varchar(32);default:'pending';index" json:"status"`
	Priority      string `gorm:"type:varchar(16);default:'normal'" json:"priority"`
	PaymentStatus string `gorm:"type:varchar(16);default:'unpaid'" json:"payment_status"`

	PaymentDate   *time.Time `json:"payment_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date"`

	RejectionReason string `gorm:"type:text" json:"rejection_reason"`
	ProcessedBy     *uint  `json:"processed_by"`
	Notes           string `gorm:"type:text" json:"notes"`
}

// RequestSequence holds the per-year request number counter. The row is
// incremented under a row-level lock inside the creation transaction so two
// concurrent submissions cannot derive the same number.
type RequestSequence struct {
	Year  int `gorm:"primaryKey;autoIncrement:false"`
	Value int `gorm:"not null"`
}
