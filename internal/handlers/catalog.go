package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/response"
)

// CatalogHandler serves the public catalog of barangay services.
type CatalogHandler struct {
	svc *services.CatalogService
}

func NewCatalogHandler(svc *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/services
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.svc.ListActive(requestContext(c), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/services/:slug
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.svc.GetBySlug(requestContext(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}
