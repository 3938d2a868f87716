package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	"github.com/gridmind-ai/gridmind/backend/internal/storage"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// DeleteChartHandler removes a render job and its stored objects
func DeleteChartHandler(c echo.Context) error {
	type chartParams struct {
		ID string `param:"id" validate:"required"`
	}

	type deleteChartResponse struct {
		Message string `json:"message"`
	}

	params := new(chartParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteChartResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteChartResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	job, ok := app.Jobs.Get(params.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, deleteChartResponse{
			Message: "Chart job not found",
		})
	}

	if app.S3 != nil {
		if err := storage.DeleteFolder(c.Request().Context(), app.S3, "jobs/"+job.ID+"/"); err != nil {
			logger.Error("Failed to delete chart objects", "job_id", job.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, deleteChartResponse{
				Message: "Internal server error",
			})
		}
	}

	app.Jobs.Delete(job.ID)

	return c.JSON(http.StatusOK, deleteChartResponse{
		Message: "Chart deleted successfully",
	})
}
