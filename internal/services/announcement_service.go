package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases the title and collapses every non-alphanumeric run into a
// single dash. The caller appends a uniqueness suffix.
func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// CreateAnnouncementInput captures an admin-authored announcement.
type CreateAnnouncementInput struct {
	Title         string
	Content       string
	Excerpt       string
	Category      string
	Image         string
	EventDate     *time.Time
	EventTime     string
	EventLocation string
	IsFeatured    bool
	IsPublished   *bool
	AuthorID      *uint
}

// UpdateAnnouncementInput is a partial patch; nil fields are left untouched.
type UpdateAnnouncementInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Category      *string
	Image         *string
	EventDate     *time.Time
	EventTime     *string
	EventLocation *string
	IsFeatured    *bool
	IsPublished   *bool
}

// ListAnnouncementsOptions controls filtering and pagination of the public feed.
type ListAnnouncementsOptions struct {
	Category     string
	FeaturedOnly bool
	Search       string
	Page         int
	PageSize     int
}

// AnnouncementService manages community announcements and events.
type AnnouncementService struct {
	db       *gorm.DB
	activity *ActivityService
	now      func() time.Time
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(db *gorm.DB, activity *ActivityService) (*AnnouncementService, error) {
	if db == nil {
		return nil, errors.New("announcement service: db is required")
	}
	if activity == nil {
		return nil, errors.New("announcement service: activity service is required")
	}
	return &AnnouncementService{db: db, activity: activity, now: time.Now}, nil
}

// List returns published announcements, optionally filtered, newest first.
func (s *AnnouncementService) List(ctx context.Context, opts ListAnnouncementsOptions) ([]models.Announcement, int64, error) {
	ctx = ensureContext(ctx)

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PageSize
	if perPage <= 0 || perPage > 50 {
		perPage = 10
	}

	query := s.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("is_published = ?", true)
	if opts.Category != "" && opts.Category != "all" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("announcement service: count: %w", err)
	}

	var announcements []models.Announcement
	if err := query.
		Order("published_at DESC, created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&announcements).Error; err != nil {
		return nil, 0, fmt.Errorf("announcement service: list: %w", err)
	}
	return announcements, total, nil
}

// GetBySlug loads one published announcement and increments its view counter.
func (s *AnnouncementService) GetBySlug(ctx context.Context, slug string) (*models.Announcement, error) {
	ctx = ensureContext(ctx)

	var announcement models.Announcement
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&announcement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Announcement not found")
	}
	if err != nil {
		return nil, fmt.Errorf("announcement service: load: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&announcement).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, fmt.Errorf("announcement service: bump views: %w", err)
	}
	announcement.Views++

	return &announcement, nil
}

// Create persists an announcement. The slug derives from the title with a
// timestamp suffix so repeated titles never collide. Publishing stamps
// published_at; an empty excerpt falls back to a content prefix.
func (s *AnnouncementService) Create(ctx context.Context, input CreateAnnouncementInput) (*models.Announcement, error) {
	ctx = ensureContext(ctx)

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, apperrors.NewBadRequest("Title and content are required.")
	}

	now := s.now()
	published := true
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	announcement := models.Announcement{
		Title:         title,
		Slug:          fmt.Sprintf("%s-%d", slugify(title), now.Unix()),
		Content:       content,
		Excerpt:       strings.TrimSpace(input.Excerpt),
		Category:      defaultIfEmpty(strings.TrimSpace(input.Category), models.AnnouncementNews),
		Image:         input.Image,
		EventDate:     input.EventDate,
		EventTime:     input.EventTime,
		EventLocation: input.EventLocation,
		IsFeatured:    input.IsFeatured,
		IsPublished:   published,
		AuthorID:      input.AuthorID,
	}
	if announcement.Excerpt == "" {
		announcement.Excerpt = excerptFrom(content)
	}
	if published {
		announcement.PublishedAt = &now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&announcement).Error; err != nil {
			return fmt.Errorf("announcement service: insert: %w", err)
		}

		recordID := announcement.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     input.AuthorID,
			Action:     "create_announcement",
			Module:     "announcements",
			RecordID:   &recordID,
			RecordType: "announcement",
			NewValues:  map[string]any{"title": announcement.Title, "slug": announcement.Slug},
		})
	})
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// Update applies a partial patch. Flipping is_published to true on a draft that
// was never published backfills published_at.
func (s *AnnouncementService) Update(ctx context.Context, id uint, patch UpdateAnnouncementInput, updatedBy *uint) (*models.Announcement, error) {
	ctx = ensureContext(ctx)

	var announcement models.Announcement
	err := s.db.WithContext(ctx).First(&announcement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Announcement not found")
	}
	if err != nil {
		return nil, fmt.Errorf("announcement service: load: %w", err)
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		updates["content"] = strings.TrimSpace(*patch.Content)
	}
	if patch.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*patch.Excerpt)
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.EventDate != nil {
		updates["event_date"] = *patch.EventDate
	}
	if patch.EventTime != nil {
		updates["event_time"] = *patch.EventTime
	}
	if patch.EventLocation != nil {
		updates["event_location"] = *patch.EventLocation
	}
	if patch.IsFeatured != nil {
		updates["is_featured"] = *patch.IsFeatured
	}
	if patch.IsPublished != nil {
		updates["is_published"] = *patch.IsPublished
		if *patch.IsPublished && announcement.PublishedAt == nil {
			updates["published_at"] = s.now()
		}
	}
	if len(updates) == 0 {
		return &announcement, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&announcement).Updates(updates).Error; err != nil {
			return fmt.Errorf("announcement service: apply patch: %w", err)
		}

		recordID := announcement.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     updatedBy,
			Action:     "update_announcement",
			Module:     "announcements",
			RecordID:   &recordID,
			RecordType: "announcement",
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&announcement, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("announcement service: reload: %w", err)
	}
	return &announcement, nil
}

// Delete removes an announcement and records the deletion.
func (s *AnnouncementService) Delete(ctx context.Context, id uint, deletedBy *uint) error {
	ctx = ensureContext(ctx)

	var announcement models.Announcement
	err := s.db.WithContext(ctx).First(&announcement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound("Announcement not found")
	}
	if err != nil {
		return fmt.Errorf("announcement service: load: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&announcement).Error; err != nil {
			return fmt.Errorf("announcement service: delete: %w", err)
		}

		recordID := announcement.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     deletedBy,
			Action:     "delete_announcement",
			Module:     "announcements",
			RecordID:   &recordID,
			RecordType: "announcement",
			OldValues:  map[string]any{"title": announcement.Title, "slug": announcement.Slug},
		})
	})
}

// excerptFrom trims the content to a short teaser.
func excerptFrom(content string) string {
	const limit = 200
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
