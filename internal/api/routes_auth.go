package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/handlers"
)

func registerAuthRoutes(api *gin.RouterGroup, handler *handlers.AuthHandler, requireAuth gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/me", requireAuth, handler.Me)
	}
}
