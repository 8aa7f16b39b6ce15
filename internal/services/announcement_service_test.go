package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

func newAnnouncementService(t *testing.T, db *gorm.DB) *AnnouncementService {
	t.Helper()

	activity, err := NewActivityService(db)
	require.NoError(t, err)
	svc, err := NewAnnouncementService(db, activity)
	require.NoError(t, err)
	return svc
}

func TestAnnouncementServiceCreate(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)
	author := createTestUser(t, db, "captain@example.com")

	created, err := svc.Create(context.Background(), CreateAnnouncementInput{
		Title:    "Barangay Fiesta 2026!",
		Content:  strings.Repeat("The annual fiesta is coming. ", 20),
		Category: models.AnnouncementEvent,
		AuthorID: &author.ID,
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(created.Slug, "barangay-fiesta-2026-"), "slug %q", created.Slug)
	require.Equal(t, models.AnnouncementEvent, created.Category)
	require.True(t, created.IsPublished)
	require.NotNil(t, created.PublishedAt)

	// Excerpt falls back to a content prefix when none is given.
	require.True(t, strings.HasSuffix(created.Excerpt, "..."))
	require.LessOrEqual(t, len([]rune(created.Excerpt)), 203)

	var log models.ActivityLog
	require.NoError(t, db.Where("action = ?", "create_announcement").First(&log).Error)
	require.Equal(t, "announcements", log.Module)
}

func TestAnnouncementServiceCreateDraft(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)

	published := false
	created, err := svc.Create(context.Background(), CreateAnnouncementInput{
		Title:       "Draft Advisory",
		Content:     "Water interruption on Saturday.",
		Category:    models.AnnouncementAdvisory,
		IsPublished: &published,
	})
	require.NoError(t, err)
	require.False(t, created.IsPublished)
	require.Nil(t, created.PublishedAt)
}

func TestAnnouncementServiceCreateValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)

	_, err := svc.Create(context.Background(), CreateAnnouncementInput{Title: " ", Content: "body"})
	require.Error(t, err)
	require.Equal(t, 400, apperrors.FromError(err).StatusCode)
}

func TestAnnouncementServiceList(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)
	ctx := context.Background()

	mustCreate := func(title, category string, featured bool) *models.Announcement {
		created, err := svc.Create(ctx, CreateAnnouncementInput{
			Title: title, Content: title + " details", Category: category, IsFeatured: featured,
		})
		require.NoError(t, err)
		return created
	}

	older := mustCreate("Clean-up Drive", models.AnnouncementNews, false)
	newer := mustCreate("Fiesta Parade", models.AnnouncementEvent, true)

	// Force a deterministic published order.
	base := time.Now()
	require.NoError(t, db.Model(older).UpdateColumn("published_at", base.Add(-time.Hour)).Error)
	require.NoError(t, db.Model(newer).UpdateColumn("published_at", base).Error)

	draft := false
	_, err := svc.Create(ctx, CreateAnnouncementInput{
		Title: "Hidden Draft", Content: "not yet public", IsPublished: &draft,
	})
	require.NoError(t, err)

	all, total, err := svc.List(ctx, ListAnnouncementsOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, all, 2)
	require.Equal(t, "Fiesta Parade", all[0].Title)

	events, total, err := svc.List(ctx, ListAnnouncementsOptions{Category: models.AnnouncementEvent})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Fiesta Parade", events[0].Title)

	featured, _, err := svc.List(ctx, ListAnnouncementsOptions{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)

	matched, _, err := svc.List(ctx, ListAnnouncementsOptions{Search: "clean-up"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Clean-up Drive", matched[0].Title)

	paged, total, err := svc.List(ctx, ListAnnouncementsOptions{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, paged, 1)
	require.Equal(t, "Clean-up Drive", paged[0].Title)
}

func TestAnnouncementServiceGetBySlugIncrementsViews(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateAnnouncementInput{Title: "Vaccination Schedule", Content: "Every Wednesday."})
	require.NoError(t, err)

	first, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	require.Equal(t, 1, first.Views)

	second, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	require.Equal(t, 2, second.Views)

	_, err = svc.GetBySlug(ctx, "no-such-slug")
	require.Error(t, err)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
}

func TestAnnouncementServiceUpdatePublishBackfillsDate(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)
	ctx := context.Background()

	draft := false
	created, err := svc.Create(ctx, CreateAnnouncementInput{
		Title: "Pending Notice", Content: "details", IsPublished: &draft,
	})
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	publish := true
	newTitle := "Official Notice"
	updated, err := svc.Update(ctx, created.ID, UpdateAnnouncementInput{
		Title:       &newTitle,
		IsPublished: &publish,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "Official Notice", updated.Title)
	require.True(t, updated.IsPublished)
	require.NotNil(t, updated.PublishedAt)
	require.WithinDuration(t, time.Now(), *updated.PublishedAt, 5*time.Second)

	var log models.ActivityLog
	require.NoError(t, db.Where("action = ?", "update_announcement").First(&log).Error)
}

func TestAnnouncementServiceDelete(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc := newAnnouncementService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateAnnouncementInput{Title: "Obsolete", Content: "old news"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, nil))

	var count int64
	require.NoError(t, db.Model(&models.Announcement{}).Where("id = ?", created.ID).Count(&count).Error)
	require.Zero(t, count)

	err = svc.Delete(ctx, created.ID, nil)
	require.Error(t, err)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
}
