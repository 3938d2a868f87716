package routes

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/transcript"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// CreateUploadHandler stores multipart files for later streaming playback
func CreateUploadHandler(c echo.Context) error {
	type uploadedFile struct {
		Name            string `json:"name"`
		Size            int64  `json:"size"`
		AssociatedImage string `json:"associated_image,omitempty"`
	}

	type createUploadResponse struct {
		Message  string         `json:"message"`
		UploadID string         `json:"upload_id,omitempty"`
		Files    []uploadedFile `json:"files,omitempty"`
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, createUploadResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, createUploadResponse{
			Message: "No files provided",
		})
	}

	store := c.(*middleware.AppContext).App.Uploads
	id, err := store.NewUpload()
	if err != nil {
		logger.Error("Failed to create upload", "err", err)
		return c.JSON(http.StatusInternalServerError, createUploadResponse{
			Message: "Internal server error",
		})
	}

	names := make([]string, 0, len(uploads))
	sizes := make(map[string]int64, len(uploads))
	paths := make(map[string]string, len(uploads))
	for _, file := range uploads {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, createUploadResponse{
				Message: "Invalid request body",
			})
		}

		path, size, err := store.Save(id, file.Filename, src)
		src.Close()
		if err != nil {
			logger.Error("Failed to store file", "name", file.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, createUploadResponse{
				Message: "Internal server error",
			})
		}

		name := filepath.Base(path)
		names = append(names, name)
		sizes[name] = size
		paths[name] = path
	}

	// Associations are resolved after all files landed so an image arriving
	// behind its transcript still pairs up.
	files := make([]uploadedFile, 0, len(names))
	for _, name := range names {
		entry := uploadedFile{Name: name, Size: sizes[name]}
		if img := transcript.FindAssociatedImage(paths[name]); img != "" {
			entry.AssociatedImage = filepath.Base(img)
		}
		files = append(files, entry)
	}

	return c.JSON(http.StatusOK, createUploadResponse{
		Message:  "Upload created successfully",
		UploadID: id,
		Files:    files,
	})
}
