package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
)

// ResetModelMetricsHandler clears the accumulated usage metrics
func ResetModelMetricsHandler(c echo.Context) error {
	engine := c.(*middleware.AppContext).App.Engine
	engine.ResetMetrics()

	return c.JSON(http.StatusOK, map[string]string{"message": "Metrics reset"})
}
