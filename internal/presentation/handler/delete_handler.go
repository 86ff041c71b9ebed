package handler

import (
	"github.com/labstack/echo/v4"

	"clipvault/internal/application/usecase/abstraction"
	"clipvault/internal/domain/model"
	"clipvault/internal/presentation"
)

type DeleteHandler struct {
	deleter abstraction.Deleter
}

func NewDeleteHandler(deleter abstraction.Deleter) *DeleteHandler {
	return &DeleteHandler{
		deleter: deleter,
	}
}

// HandleDelete removes the stored file first, then the record. Once the
// record is gone a repeat call answers 404.
func (h *DeleteHandler) HandleDelete(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		status, err := h.deleter.Delete(c.Request().Context(), requesterID,
			c.Param(presentation.IDParam), kind)
		if err != nil {
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(status, map[string]string{"message": "asset deleted"})
	}
}
