package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qalib/internal/config"
	"qalib/internal/report"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	fontCfg config.FontConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(fontCfg config.FontConfig) *HealthHandler {
	return &HealthHandler{fontCfg: fontCfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready when the report fonts
// it depends on are present on disk.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := report.LoadFontSet(h.fontCfg); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "report fonts not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
