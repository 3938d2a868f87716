package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	"github.com/gridmind-ai/gridmind/backend/internal/storage"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// GetChartHandler reports a render job's progress and download link
func GetChartHandler(c echo.Context) error {
	type chartParams struct {
		ID string `param:"id" validate:"required"`
	}

	type chartResponse struct {
		Message string `json:"message,omitempty"`
		ID      string `json:"id,omitempty"`
		Kind    string `json:"kind,omitempty"`
		Status  string `json:"status,omitempty"`
		Error   string `json:"error,omitempty"`
		Key     string `json:"key,omitempty"`
		URL     string `json:"url,omitempty"`
	}

	params := new(chartParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, chartResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, chartResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	job, ok := app.Jobs.Get(params.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, chartResponse{
			Message: "Chart job not found",
		})
	}

	resp := chartResponse{
		ID:     job.ID,
		Kind:   job.Kind,
		Status: job.Status,
		Error:  job.Error,
		Key:    job.Key,
	}

	if job.Status == common.StatusDone && job.Key != "" && app.S3 != nil {
		url, err := storage.GenerateDownloadLink(c.Request().Context(), app.S3, job.Key)
		if err != nil {
			logger.Error("Failed to presign download link", "job_id", job.ID, "err", err)
		} else {
			resp.URL = url
		}
	}

	return c.JSON(http.StatusOK, resp)
}
