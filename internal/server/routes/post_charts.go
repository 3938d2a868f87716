package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/queue"
	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	"github.com/gridmind-ai/gridmind/backend/internal/storage"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// CreateChartHandler uploads a chart source file and schedules its render
func CreateChartHandler(c echo.Context) error {
	type createChartBody struct {
		Kind     string `form:"kind" validate:"required,oneof=topology timeseries"`
		Layout   string `form:"layout"`
		TsColumn string `form:"ts_column"`
		Title    string `form:"title"`
	}

	type createChartResponse struct {
		Message string `json:"message,omitempty"`
		ID      string `json:"id,omitempty"`
		Status  string `json:"status,omitempty"`
	}

	data := new(createChartBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createChartResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createChartResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	if app.S3 == nil {
		return c.JSON(http.StatusServiceUnavailable, createChartResponse{
			Message: "Object storage not configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, createChartResponse{
			Message: "No data file provided",
		})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, createChartResponse{
			Message: "Invalid request body",
		})
	}
	defer src.Close()

	ctx := c.Request().Context()

	job, err := app.Jobs.Create(data.Kind)
	if err != nil {
		logger.Error("Failed to create job", "err", err)
		return c.JSON(http.StatusInternalServerError, createChartResponse{
			Message: "Internal server error",
		})
	}

	key, err := storage.PutFile(ctx, app.S3, "jobs/"+job.ID, file.Filename, "source", src)
	if err != nil {
		logger.Error("Failed to upload source file", "job_id", job.ID, "err", err)
		app.Jobs.SetFailed(job.ID, "failed to store source file")
		return c.JSON(http.StatusInternalServerError, createChartResponse{
			Message: "Internal server error",
		})
	}

	task := queue.RenderTask{
		JobID:    job.ID,
		Kind:     data.Kind,
		Key:      key,
		Layout:   data.Layout,
		TsColumn: data.TsColumn,
		Title:    data.Title,
		Name:     file.Filename,
	}

	if app.Queue != nil {
		body, err := json.Marshal(task)
		if err != nil {
			logger.Error("Failed to marshal render task", "job_id", job.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, createChartResponse{
				Message: "Internal server error",
			})
		}
		if err := queue.PublishFIFO(ctx, app.Queue, common.QueueRender, body); err != nil {
			logger.Error("Failed to publish render task", "job_id", job.ID, "err", err)
			app.Jobs.SetFailed(job.ID, "failed to enqueue render task")
			// The job will never render, remove the orphaned source object.
			if err := storage.DeleteFile(ctx, app.S3, key); err != nil {
				logger.Error("Failed to remove source file", "key", key, "err", err)
			}
			return c.JSON(http.StatusInternalServerError, createChartResponse{
				Message: "Internal server error",
			})
		}
	} else {
		// No queue configured, render in-process off the request path.
		go func() {
			app.Jobs.SetRunning(task.JobID)
			st, err := queue.ExecuteRender(context.Background(), app.S3, task)
			if err != nil {
				st = queue.RenderStatus{JobID: task.JobID, Status: common.StatusFailed, Error: err.Error()}
			}
			if err := queue.ApplyStatus(app.Jobs, st); err != nil {
				logger.Error("Failed to record render result", "job_id", task.JobID, "err", err)
			}
		}()
	}

	return c.JSON(http.StatusAccepted, createChartResponse{
		ID:     job.ID,
		Status: job.Status,
	})
}
