package server

import (
	"github.com/gridmind-ai/gridmind/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Model routes
	apiRoutes.POST("/models/load", routes.LoadModelHandler)
	apiRoutes.GET("/models/current", routes.GetCurrentModelHandler)
	apiRoutes.GET("/models/metrics", routes.GetModelMetricsHandler)
	apiRoutes.DELETE("/models/metrics", routes.ResetModelMetricsHandler)

	// Upload routes
	apiRoutes.POST("/uploads", routes.CreateUploadHandler)

	// Inference routes
	apiRoutes.POST("/inference", routes.InferenceHandler)
	apiRoutes.POST("/inference/stream", routes.InferenceStreamHandler)

	// Chart routes
	apiRoutes.POST("/charts", routes.CreateChartHandler)
	apiRoutes.GET("/charts/:id", routes.GetChartHandler)
	apiRoutes.DELETE("/charts/:id", routes.DeleteChartHandler)
}
