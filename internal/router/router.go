package router

import (
	"github.com/gin-gonic/gin"

	"qalib/internal/config"
	"qalib/internal/handler"
	"qalib/internal/middleware"
	"qalib/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	sessionSvc service.SessionService,
	fillH *handler.FillHandler,
	extractH *handler.ExtractHandler,
	reportH *handler.ReportHandler,
	sessionH *handler.SessionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/sessions", sessionH.Start)
	v1.GET("/templates/job-card", reportH.Template)

	// Protected routes - require a valid session token
	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(sessionSvc))

	protected.POST("/fill", fillH.Fill)
	protected.POST("/fill/batch", fillH.FillBatch)
	protected.GET("/artifacts/*key", fillH.Artifact)

	protected.POST("/extract", extractH.Extract)

	protected.POST("/reports/job-card", reportH.RenderPDF)
	protected.POST("/reports/job-card/docx", reportH.RenderDOCX)

	sessions := protected.Group("/sessions")
	sessions.GET("/current", sessionH.Current)
	sessions.PUT("/current/data", sessionH.SaveData)
	sessions.PUT("/current/record", sessionH.SaveRecord)
	sessions.DELETE("/current", sessionH.End)

	return r
}
