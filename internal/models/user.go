package models

// Roles assignable to portal accounts.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Account statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User describes a portal account: residents, barangay staff, and administrators.
type User struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(16);default:'user';index" json:"role"`
	Status   string `gorm:"type:varchar(16);default:'active'" json:"status"`

	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// UserProfile carries the resident-facing identity attached to an account.
type UserProfile struct {
	BaseModel

	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName  string `gorm:"not null" json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`

	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`

	AddressStreet   string `json:"address_street"`
	AddressPurok    string `json:"address_purok"`
	AddressBarangay string `json:"address_barangay"`

	ProfilePhoto string `json:"profile_photo"`
}

// FullName joins the profile name parts, skipping empty segments.
func (p *UserProfile) FullName() string {
	if p == nil {
		return ""
	}

	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}
