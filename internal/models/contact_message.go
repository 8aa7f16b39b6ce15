package models

// Contact message statuses.
const (
	ContactStatusUnread   = "unread"
	ContactStatusRead     = "read"
	ContactStatusArchived = "archived"
)

// ContactMessage is one submission of the public contact form.
type ContactMessage struct {
	BaseModel

	ReferenceNumber string `gorm:"uniqueIndex;not null" json:"reference_number"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Phone   string `json:"phone"`
	Subject string `gorm:"not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"type:varchar(16);default:'unread';index" json:"status"`

	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}
