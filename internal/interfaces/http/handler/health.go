package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	*BaseHandler
	db      *gorm.DB
	appName string
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, appName, version string) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(),
		db:          db,
		appName:     appName,
		version:     version,
	}
}

// RegisterRoutes registers health routes on the given router group
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
}

// Check pings the database and reports overall status
// @Router /api/v1/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"app":       h.appName,
		"version":   h.version,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
