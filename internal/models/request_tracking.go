package models

import "time"

// RequestTracking is one immutable audit-trail row capturing a status a request
// assumed at one point in time. Rows are only ever inserted.
type RequestTracking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RequestID uint           `gorm:"index;not null" json:"request_id"`
	Request   ServiceRequest `gorm:"foreignKey:RequestID" json:"-"`

	Status    string `gorm:"type:varchar(32);not null" json:"status"`
	Remarks   string `gorm:"type:text" json:"remarks"`
	UpdatedBy *uint  `json:"updated_by"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
