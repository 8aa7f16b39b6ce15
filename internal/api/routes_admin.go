package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/handlers"
)

// registerAdminRoutes mounts the staff back office: dashboard statistics, the
// activity log, the contact inbox, and content management.
func registerAdminRoutes(api *gin.RouterGroup, dashboard *handlers.DashboardHandler, activity *handlers.ActivityHandler, announcements *handlers.AnnouncementHandler, officials *handlers.OfficialHandler, contact *handlers.ContactHandler, requireAuth, requireStaff gin.HandlerFunc) {
	admin := api.Group("/admin")
	admin.Use(requireAuth, requireStaff)
	{
		admin.GET("/dashboard", dashboard.Stats)
		admin.GET("/activity", activity.List)

		admin.GET("/messages", contact.List)
		admin.PUT("/messages/:id/status", contact.MarkStatus)

		admin.POST("/announcements", announcements.Create)
		admin.PUT("/announcements/:id", announcements.Update)
		admin.DELETE("/announcements/:id", announcements.Delete)

		admin.POST("/officials", officials.Create)
		admin.PUT("/officials/:id", officials.Update)
		admin.DELETE("/officials/:id", officials.Deactivate)
	}
}
