package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
)

// GetCurrentModelHandler reports the engine's loaded model state
func GetCurrentModelHandler(c echo.Context) error {
	type currentModelResponse struct {
		Type      string `json:"type"`
		Device    string `json:"device"`
		ModelPath string `json:"model_path"`
		Loaded    bool   `json:"loaded"`
	}

	engine := c.(*middleware.AppContext).App.Engine
	state := engine.State()

	return c.JSON(http.StatusOK, currentModelResponse{
		Type:      state.Type,
		Device:    state.Device,
		ModelPath: state.ModelPath,
		Loaded:    state.Type != "",
	})
}

// GetModelMetricsHandler returns the accumulated usage metrics
func GetModelMetricsHandler(c echo.Context) error {
	engine := c.(*middleware.AppContext).App.Engine
	metrics := engine.GetMetrics()

	return c.JSON(http.StatusOK, metrics)
}
