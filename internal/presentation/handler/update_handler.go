package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clipvault/internal/application/usecase/abstraction"
	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/presentation"
)

type UpdateHandler struct {
	updater abstraction.Updater
	trimmer abstraction.Trimmer
}

func NewUpdateHandler(updater abstraction.Updater, trimmer abstraction.Trimmer) *UpdateHandler {
	return &UpdateHandler{
		updater: updater,
		trimmer: trimmer,
	}
}

// HandleUpdate applies a partial metadata patch. Absent fields are left
// alone; archived assets reject any patch.
func (h *UpdateHandler) HandleUpdate(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		var patch dto.AssetPatch
		if err := c.Bind(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}

		asset, status, err := h.updater.Update(c.Request().Context(), requesterID,
			c.Param(presentation.IDParam), kind, patch)
		if err != nil {
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(status, dto.DescribeAsset(asset))
	}
}

// HandleArchive moves an asset into its terminal archived state.
func (h *UpdateHandler) HandleArchive(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		asset, status, err := h.updater.Archive(c.Request().Context(), requesterID,
			c.Param(presentation.IDParam), kind)
		if err != nil {
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(status, dto.DescribeAsset(asset))
	}
}

// HandleTrim queues a derived clip of a video and answers 202 with the new
// asset, which starts in processing state.
func (h *UpdateHandler) HandleTrim() echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		var req dto.TrimRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}

		asset, status, err := h.trimmer.Trim(c.Request().Context(), requesterID,
			c.Param(presentation.IDParam), req)
		if err != nil {
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(status, dto.DescribeAsset(asset))
	}
}
