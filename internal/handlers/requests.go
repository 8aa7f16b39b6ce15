package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/models"
	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/errors"
	"github.com/jlbernardo/barangaylink/pkg/response"
)

// RequestHandler exposes the service request lifecycle over HTTP.
type RequestHandler struct {
	svc *services.RequestService
}

func NewRequestHandler(svc *services.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type createRequestBody struct {
	ServiceID uint   `json:"service_id" validate:"required"`
	Purpose   string `json:"purpose" validate:"max=500"`
	Priority  string `json:"priority" validate:"omitempty,oneof=normal urgent"`
}

// POST /api/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var body createRequestBody
	if !bindAndValidate(c, &body) {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	result, err := h.svc.Create(requestContext(c), services.CreateRequestInput{
		UserID:    userID,
		ServiceID: body.ServiceID,
		Purpose:   body.Purpose,
		Priority:  body.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Request submitted successfully", result)
}

type updateRequestBody struct {
	ID              uint    `json:"id" validate:"required"`
	Status          *string `json:"status" validate:"omitempty,oneof=pending processing for_pickup completed rejected"`
	Notes           *string `json:"notes" validate:"omitempty,max=1000"`
	ScheduledDate   *string `json:"scheduled_date" validate:"omitempty,dateonly"`
	PaymentStatus   *string `json:"payment_status" validate:"omitempty,oneof=unpaid paid"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,max=500"`
	ProcessedBy     *uint   `json:"processed_by"`
}

// PUT /api/requests
func (h *RequestHandler) Update(c *gin.Context) {
	var body updateRequestBody
	if !bindAndValidate(c, &body) {
		return
	}

	patch := services.UpdateRequestInput{
		Status:          body.Status,
		Notes:           body.Notes,
		PaymentStatus:   body.PaymentStatus,
		RejectionReason: body.RejectionReason,
		ProcessedBy:     body.ProcessedBy,
		UpdatedBy:       currentUserIDPtr(c),
	}
	if body.ScheduledDate != nil && strings.TrimSpace(*body.ScheduledDate) != "" {
		date, err := time.Parse("2006-01-02", *body.ScheduledDate)
		if err != nil {
			response.Error(c, errors.NewBadRequest("scheduled_date must be a date in YYYY-MM-DD format"))
			return
		}
		patch.ScheduledDate = &date
	}

	if err := h.svc.Update(requestContext(c), body.ID, patch); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Request updated successfully", nil)
}

// GET /api/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.GetByID(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Residents may only see their own requests.
	if role := currentRole(c); role == models.RoleUser {
		if userID, ok := currentUserID(c); !ok || detail.UserID != userID {
			response.Error(c, errors.ErrForbidden)
			return
		}
	}

	response.Success(c, http.StatusOK, detail)
}

// GET /api/requests
func (h *RequestHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 20)

	summaries, total, err := h.svc.List(requestContext(c), services.ListRequestsOptions{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, summaries, &response.Meta{Page: page, PerPage: perPage, Total: total})
}

// GET /api/requests/mine
func (h *RequestHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	summaries, err := h.svc.ListForUser(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summaries)
}
