package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// LoadModelHandler loads a model into the engine and streams the progress
func LoadModelHandler(c echo.Context) error {
	type loadModelBody struct {
		ModelPath string `json:"model_path" form:"model_path"`
		Device    string `json:"device" form:"device"`
	}

	type loadModelResponse struct {
		Message string `json:"message"`
	}

	data := new(loadModelBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, loadModelResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, loadModelResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	engine := c.(*middleware.AppContext).App.Engine

	events, err := engine.LoadModelStream(ctx, data.ModelPath, data.Device)
	if err != nil {
		logger.Error("Failed to start model load", "err", err)
		return c.JSON(http.StatusInternalServerError, loadModelResponse{
			Message: "Internal server error",
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)

	enc := json.NewEncoder(c.Response())
	for event := range events {
		if err := enc.Encode(event); err != nil {
			return err
		}
		c.Response().Flush()
	}

	return nil
}
