package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"clipvault/internal/application/usecase/abstraction"
	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/presentation"
	"clipvault/pkg/logger"
)

type UploadHandler struct {
	uploader abstraction.Uploader
}

func NewUploadHandler(uploader abstraction.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

// Handle returns the multipart upload handler for one asset kind. The file
// must arrive under the kind's form field ("video" or "screenshot").
func (h *UploadHandler) Handle(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, _ := c.Get(presentation.KeyUserID).(string)

		file, err := c.FormFile(kind.FormField())
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("no file provided in field %q", kind.FormField()),
			})
		}

		src, err := file.Open()
		if err != nil {
			logger.Error("failed to open multipart file", "error", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "failed to read uploaded file",
			})
		}
		defer src.Close()

		duration, _ := strconv.Atoi(c.FormValue("duration"))
		isPublic, _ := strconv.ParseBool(c.FormValue("isPublic"))

		asset, status, err := h.uploader.Upload(c.Request().Context(), ownerID, kind, dto.UploadInput{
			Filename:        file.Filename,
			DeclaredMIME:    file.Header.Get("Content-Type"),
			Body:            src,
			Title:           c.FormValue("title"),
			Description:     c.FormValue("description"),
			DurationSeconds: duration,
			IsPublic:        isPublic,
		})
		if err != nil {
			if status == http.StatusInternalServerError {
				logger.Error("upload failed", "error", err)

				return c.JSON(status, map[string]string{
					"error": "failed to upload file, please try again later",
				})
			}

			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(status, dto.DescribeAsset(asset))
	}
}
