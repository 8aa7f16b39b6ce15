package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/response"
)

// ContactHandler accepts public contact-form submissions and serves the staff inbox.
type ContactHandler struct {
	svc *services.ContactService
}

func NewContactHandler(svc *services.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type contactBody struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=32"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var body contactBody
	if !bindAndValidate(c, &body) {
		return
	}

	result, err := h.svc.Submit(requestContext(c), services.ContactInput{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Message received. We will get back to you soon.", result)
}

// GET /api/admin/messages
func (h *ContactHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 20)

	messages, total, err := h.svc.List(requestContext(c), services.ListMessagesOptions{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, messages, &response.Meta{Page: page, PerPage: perPage, Total: total})
}

type messageStatusBody struct {
	Status string `json:"status" validate:"required,oneof=unread read archived"`
}

// PUT /api/admin/messages/:id/status
func (h *ContactHandler) MarkStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body messageStatusBody
	if !bindAndValidate(c, &body) {
		return
	}

	if err := h.svc.MarkStatus(requestContext(c), id, body.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Message status updated", nil)
}
