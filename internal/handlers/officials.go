package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/response"
)

// OfficialHandler serves the public officials roster and its admin CRUD.
type OfficialHandler struct {
	svc *services.OfficialService
}

func NewOfficialHandler(svc *services.OfficialService) *OfficialHandler {
	return &OfficialHandler{svc: svc}
}

// GET /api/officials
func (h *OfficialHandler) List(c *gin.Context) {
	officials, err := h.svc.ListActive(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, officials)
}

type officialBody struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Position      string  `json:"position" validate:"required,max=255"`
	Committee     string  `json:"committee" validate:"max=255"`
	TermStart     *string `json:"term_start" validate:"omitempty,dateonly"`
	TermEnd       *string `json:"term_end" validate:"omitempty,dateonly"`
	ContactNumber string  `json:"contact_number" validate:"max=32"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Address       string  `json:"address" validate:"max=500"`
	Photo         string  `json:"photo" validate:"max=500"`
	Bio           string  `json:"bio"`
	PositionOrder int     `json:"position_order"`
	IsActive      *bool   `json:"is_active"`
}

func (b officialBody) toInput(c *gin.Context) (services.OfficialInput, bool) {
	termStart, ok := parseDateField(c, b.TermStart, "term_start")
	if !ok {
		return services.OfficialInput{}, false
	}
	termEnd, ok := parseDateField(c, b.TermEnd, "term_end")
	if !ok {
		return services.OfficialInput{}, false
	}
	return services.OfficialInput{
		Name:          b.Name,
		Position:      b.Position,
		Committee:     b.Committee,
		TermStart:     termStart,
		TermEnd:       termEnd,
		ContactNumber: b.ContactNumber,
		Email:         b.Email,
		Address:       b.Address,
		Photo:         b.Photo,
		Bio:           b.Bio,
		PositionOrder: b.PositionOrder,
		IsActive:      b.IsActive,
	}, true
}

// POST /api/admin/officials
func (h *OfficialHandler) Create(c *gin.Context) {
	var body officialBody
	if !bindAndValidate(c, &body) {
		return
	}

	input, ok := body.toInput(c)
	if !ok {
		return
	}

	official, err := h.svc.Create(requestContext(c), input, currentUserIDPtr(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Official added", official)
}

// PUT /api/admin/officials/:id
func (h *OfficialHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body officialBody
	if !bindAndValidate(c, &body) {
		return
	}

	input, ok := body.toInput(c)
	if !ok {
		return
	}

	official, err := h.svc.Update(requestContext(c), id, input, currentUserIDPtr(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Official updated", official)
}

// DELETE /api/admin/officials/:id
func (h *OfficialHandler) Deactivate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Deactivate(requestContext(c), id, currentUserIDPtr(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Official removed from roster", nil)
}
