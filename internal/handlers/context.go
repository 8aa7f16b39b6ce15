package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jlbernardo/barangaylink/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated account ID set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.CtxUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// currentUserIDPtr is currentUserID for callers that record optional actors.
func currentUserIDPtr(c *gin.Context) *uint {
	if id, ok := currentUserID(c); ok {
		return &id
	}
	return nil
}

// currentRole returns the authenticated account role, or "" for anonymous callers.
func currentRole(c *gin.Context) string {
	value, exists := c.Get(middleware.CtxRoleKey)
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}
