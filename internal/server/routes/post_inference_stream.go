package routes

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	serverutil "github.com/gridmind-ai/gridmind/backend/internal/server/util"
	"github.com/gridmind-ai/gridmind/backend/internal/util"
	"github.com/gridmind-ai/gridmind/backend/pkg/ai"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/transcript"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// InferenceStreamHandler plays a transcript's output segment back as a
// character stream
func InferenceStreamHandler(c echo.Context) error {
	type streamBody struct {
		UploadID     string   `json:"upload_id" form:"upload_id"`
		Name         string   `json:"name" form:"name"`
		Temperature  *float64 `json:"temperature" form:"temperature"`
		TopP         *float64 `json:"top_p" form:"top_p"`
		MaxNewTokens *int     `json:"max_new_tokens" form:"max_new_tokens"`
		Seed         *int     `json:"seed" form:"seed"`
	}

	type streamResponse struct {
		Message string           `json:"message,omitempty"`
		Text    string           `json:"text"`
		Metrics *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	data := new(streamBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, streamResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, streamResponse{
			Message: "Invalid request body",
		})
	}

	store := c.(*middleware.AppContext).App.Uploads

	uploadID := data.UploadID
	name := data.Name
	if file, err := c.FormFile("text"); err == nil {
		id, err := store.NewUpload()
		if err != nil {
			logger.Error("Failed to create upload", "err", err)
			return c.JSON(http.StatusInternalServerError, streamResponse{
				Message: "Internal server error",
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, streamResponse{
				Message: "Invalid request body",
			})
		}
		_, _, err = store.Save(id, file.Filename, src)
		src.Close()
		if err != nil {
			logger.Error("Failed to store file", "name", file.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, streamResponse{
				Message: "Internal server error",
			})
		}

		// Sibling files land in the same upload so paired output files
		// resolve next to the transcript.
		if form, err := c.MultipartForm(); err == nil {
			for _, sibling := range form.File["files"] {
				ssrc, err := sibling.Open()
				if err != nil {
					return c.JSON(http.StatusBadRequest, streamResponse{
						Message: "Invalid request body",
					})
				}
				_, _, err = store.Save(id, sibling.Filename, ssrc)
				ssrc.Close()
				if err != nil {
					logger.Error("Failed to store file", "name", sibling.Filename, "err", err)
					return c.JSON(http.StatusInternalServerError, streamResponse{
						Message: "Internal server error",
					})
				}
			}
		}

		uploadID = id
		name = filepath.Base(file.Filename)
	}

	if uploadID == "" || name == "" {
		return c.JSON(http.StatusBadRequest, streamResponse{
			Message: "No input text provided",
		})
	}

	path, err := store.Path(uploadID, name)
	if err != nil {
		return c.JSON(http.StatusNotFound, streamResponse{
			Message: "Upload not found",
		})
	}

	ctx := c.Request().Context()
	playback := util.SanitizeText(transcript.ResolveOutput(ctx, loaderio.NewIOFileLoader(), loader.NewInputFile(path)))

	params := serverutil.ResolveGenerateParams(data.Temperature, data.TopP, data.MaxNewTokens, data.Seed)

	engine := c.(*middleware.AppContext).App.Engine
	events, err := engine.GenerateStream(
		ctx,
		playback,
		ai.WithTemperature(params.Temperature),
		ai.WithTopP(params.TopP),
		ai.WithMaxNewTokens(params.MaxNewTokens),
		ai.WithSeed(params.Seed),
	)
	if err != nil {
		logger.Error("Failed to start stream", "err", err)
		return c.JSON(http.StatusInternalServerError, streamResponse{
			Message: "Internal server error",
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)

	enc := json.NewEncoder(c.Response())
	var textBuffer strings.Builder

	for event := range events {
		if event.Type != "content" {
			continue
		}
		textBuffer.WriteString(event.Content)
		if err := enc.Encode(streamResponse{Text: textBuffer.String()}); err != nil {
			return err
		}
		c.Response().Flush()
	}

	metrics := engine.GetMetrics()
	return c.JSON(http.StatusOK, streamResponse{
		Text:    textBuffer.String(),
		Metrics: &metrics,
	})
}
