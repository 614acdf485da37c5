package router

import (
	"github.com/gin-gonic/gin"

	"peakbridge/internal/config"
	"peakbridge/internal/handler"
	"peakbridge/internal/middleware"
	"peakbridge/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	jobH *handler.JobHandler,
	rowH *handler.RowHandler,
	extractH *handler.ExtractHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Job routes
	jobs := protected.Group("/jobs")
	jobs.POST("", jobH.Create)
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.GetByID)
	jobs.POST("/:id/cancel", jobH.Cancel)
	jobs.GET("/:id/files", jobH.ListFiles)
	jobs.GET("/:id/rows", jobH.ListRows)
	jobs.GET("/:id/export.csv", jobH.ExportCSV)
	jobs.GET("/:id/export.xlsx", jobH.ExportXLSX)

	// Row review edits
	protected.PATCH("/rows/:id", rowH.Patch)

	// Direct extraction for tooling
	protected.POST("/extract", extractH.Extract)
	protected.POST("/detect", extractH.Detect)

	return r
}
