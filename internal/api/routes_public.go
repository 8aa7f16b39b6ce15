package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/handlers"
	"github.com/jlbernardo/barangaylink/internal/middleware"
)

// registerPublicRoutes mounts the anonymous portal endpoints: the service
// catalog, published announcements, the officials roster, and the contact form.
func registerPublicRoutes(api *gin.RouterGroup, catalog *handlers.CatalogHandler, announcements *handlers.AnnouncementHandler, officials *handlers.OfficialHandler, contact *handlers.ContactHandler) {
	api.GET("/services", catalog.List)
	api.GET("/services/:slug", catalog.Get)

	api.GET("/announcements", announcements.List)
	api.GET("/announcements/:slug", announcements.Get)

	api.GET("/officials", officials.List)

	api.POST("/contact", middleware.Actor(), contact.Submit)
}
