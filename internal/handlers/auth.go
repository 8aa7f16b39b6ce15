package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/errors"
	"github.com/jlbernardo/barangaylink/pkg/response"
)

// AuthHandler manages registration, login, and the authenticated profile.
type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	FirstName     string `json:"first_name" validate:"required,max=100"`
	MiddleName    string `json:"middle_name" validate:"max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"max=32"`
	Mobile        string `json:"mobile" validate:"max=32"`
	AddressStreet string `json:"address_street" validate:"max=255"`
	AddressPurok  string `json:"address_purok" validate:"max=255"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.users.Register(requestContext(c), services.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Mobile:        req.Mobile,
		AddressStreet: req.AddressStreet,
		AddressPurok:  req.AddressPurok,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Registration successful", result)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.users.Login(requestContext(c), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	profile, err := h.users.GetProfile(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}
