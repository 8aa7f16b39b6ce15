package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/handlers"
)

func registerRequestRoutes(api *gin.RouterGroup, handler *handlers.RequestHandler, requireAuth, requireStaff gin.HandlerFunc) {
	group := api.Group("/requests")
	group.Use(requireAuth)
	{
		group.POST("", handler.Create)
		group.GET("/mine", handler.ListMine)
		group.GET("/:id", handler.Get)

		// Staff-only operations: the full list and lifecycle updates. The
		// update carries the request id in its body rather than the path.
		group.GET("", requireStaff, handler.List)
		group.PUT("", requireStaff, handler.Update)
	}
}
