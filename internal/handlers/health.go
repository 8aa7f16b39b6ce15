package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports process liveness and database readiness.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"status":     "up",
		"checked_at": time.Now().UTC(),
	})
}

// GET /health and /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	start := time.Now()
	status := "up"
	details := ""

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(requestContext(c))
	}
	if err != nil {
		status = "down"
		details = err.Error()
	}

	code := http.StatusOK
	if status != "up" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"success": status == "up",
		"status":  status,
		"checks": []gin.H{{
			"component": "database",
			"status":    status,
			"details":   details,
			"duration":  time.Since(start).String(),
		}},
		"checked_at": time.Now().UTC(),
	})
}
