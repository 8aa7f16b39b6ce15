package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/handlers"
)

func registerNotificationRoutes(api *gin.RouterGroup, handler *handlers.NotificationHandler, requireAuth gin.HandlerFunc) {
	group := api.Group("/notifications")
	group.Use(requireAuth)
	{
		group.GET("", handler.List)
		group.PUT("/read-all", handler.MarkAllRead)
		group.PUT("/:id/read", handler.MarkRead)
	}
}
