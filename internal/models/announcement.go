package models

import "time"

// Announcement categories.
const (
	AnnouncementNews     = "news"
	AnnouncementEvent    = "event"
	AnnouncementAdvisory = "advisory"
)

// Announcement is a published news item, event, or advisory on the public site.
type Announcement struct {
	BaseModel

	Title   string `gorm:"not null" json:"title"`
	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	Content string `gorm:"type:text;not null" json:"content"`
	Excerpt string `gorm:"type:text" json:"excerpt"`

	Category string `gorm:"type:varchar(32);default:'news';index" json:"category"`
	Image    string `json:"image"`

	EventDate     *time.Time `json:"event_date"`
	EventTime     string     `json:"event_time"`
	EventLocation string     `json:"event_location"`

	IsFeatured  bool       `gorm:"default:false;index" json:"is_featured"`
	IsPublished bool       `gorm:"default:true;index" json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`

	AuthorID *uint `json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"-"`

	Views int `gorm:"default:0" json:"views"`
}
