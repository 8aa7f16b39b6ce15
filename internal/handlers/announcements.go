package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/errors"
	"github.com/jlbernardo/barangaylink/pkg/response"
)

// AnnouncementHandler exposes the public announcement feed and admin CRUD.
type AnnouncementHandler struct {
	svc *services.AnnouncementService
}

func NewAnnouncementHandler(svc *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc}
}

// GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 10)

	announcements, total, err := h.svc.List(requestContext(c), services.ListAnnouncementsOptions{
		Category:     c.Query("category"),
		FeaturedOnly: c.Query("featured") == "true",
		Search:       c.Query("search"),
		Page:         page,
		PageSize:     perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, announcements, &response.Meta{Page: page, PerPage: perPage, Total: total})
}

// GET /api/announcements/:slug
func (h *AnnouncementHandler) Get(c *gin.Context) {
	announcement, err := h.svc.GetBySlug(requestContext(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, announcement)
}

type announcementBody struct {
	Title         string  `json:"title" validate:"required,max=255"`
	Content       string  `json:"content" validate:"required"`
	Excerpt       string  `json:"excerpt" validate:"max=500"`
	Category      string  `json:"category" validate:"omitempty,oneof=news event advisory"`
	Image         string  `json:"image" validate:"max=500"`
	EventDate     *string `json:"event_date" validate:"omitempty,dateonly"`
	EventTime     string  `json:"event_time" validate:"max=32"`
	EventLocation string  `json:"event_location" validate:"max=255"`
	IsFeatured    bool    `json:"is_featured"`
	IsPublished   *bool   `json:"is_published"`
}

// POST /api/admin/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var body announcementBody
	if !bindAndValidate(c, &body) {
		return
	}

	eventDate, ok := parseDateField(c, body.EventDate, "event_date")
	if !ok {
		return
	}

	announcement, err := h.svc.Create(requestContext(c), services.CreateAnnouncementInput{
		Title:         body.Title,
		Content:       body.Content,
		Excerpt:       body.Excerpt,
		Category:      body.Category,
		Image:         body.Image,
		EventDate:     eventDate,
		EventTime:     body.EventTime,
		EventLocation: body.EventLocation,
		IsFeatured:    body.IsFeatured,
		IsPublished:   body.IsPublished,
		AuthorID:      currentUserIDPtr(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Announcement created", announcement)
}

type announcementPatch struct {
	Title         *string `json:"title" validate:"omitempty,max=255"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt" validate:"omitempty,max=500"`
	Category      *string `json:"category" validate:"omitempty,oneof=news event advisory"`
	Image         *string `json:"image" validate:"omitempty,max=500"`
	EventDate     *string `json:"event_date" validate:"omitempty,dateonly"`
	EventTime     *string `json:"event_time" validate:"omitempty,max=32"`
	EventLocation *string `json:"event_location" validate:"omitempty,max=255"`
	IsFeatured    *bool   `json:"is_featured"`
	IsPublished   *bool   `json:"is_published"`
}

// PUT /api/admin/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body announcementPatch
	if !bindAndValidate(c, &body) {
		return
	}

	eventDate, ok := parseDateField(c, body.EventDate, "event_date")
	if !ok {
		return
	}

	announcement, err := h.svc.Update(requestContext(c), id, services.UpdateAnnouncementInput{
		Title:         body.Title,
		Content:       body.Content,
		Excerpt:       body.Excerpt,
		Category:      body.Category,
		Image:         body.Image,
		EventDate:     eventDate,
		EventTime:     body.EventTime,
		EventLocation: body.EventLocation,
		IsFeatured:    body.IsFeatured,
		IsPublished:   body.IsPublished,
	}, currentUserIDPtr(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Announcement updated", announcement)
}

// DELETE /api/admin/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(requestContext(c), id, currentUserIDPtr(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Announcement deleted", nil)
}

// parseDateField converts an optional YYYY-MM-DD string into a time pointer,
// writing a 400 response on malformed input.
func parseDateField(c *gin.Context, value *string, field string) (*time.Time, bool) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		response.Error(c, errors.NewBadRequest(field+" must be a date in YYYY-MM-DD format"))
		return nil, false
	}
	return &parsed, true
}
