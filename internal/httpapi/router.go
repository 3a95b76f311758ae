package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/lesmotsdatche/crossgen/internal/middleware"
)

// NewRouter wires the three routes this service exposes behind CORS
// and performance-monitoring middleware, guarding the generation
// trigger with an admin bearer token.
func NewRouter(h *Handlers, adminAuth *middleware.AdminAuth) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.PerformanceMonitor())

	router.GET("/health", h.Health)
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(200, middleware.GetMetrics())
	})

	api := router.Group("/api")
	{
		api.GET("/puzzles/:date", h.GetPuzzleByDate)

		admin := api.Group("/admin")
		admin.Use(adminAuth.RequireAdmin())
		{
			admin.POST("/generate", h.TriggerGeneration)
		}
	}

	return router
}
