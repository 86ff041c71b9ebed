package handler

import (
	"github.com/labstack/echo/v4"

	"clipvault/internal/application/usecase/abstraction"
	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/presentation"
)

type GetHandler struct {
	getter abstraction.Getter
	lister abstraction.Lister
}

func NewGetHandler(getter abstraction.Getter, lister abstraction.Lister) *GetHandler {
	return &GetHandler{
		getter: getter,
		lister: lister,
	}
}

// HandleGet serves one asset by id. Reading a private video bumps its view
// count; public and screenshot reads do not.
func (h *GetHandler) HandleGet(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		asset, status, err := h.getter.Get(c.Request().Context(), requesterID, c.Param(presentation.IDParam), kind)
		if err != nil {
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(status, dto.DescribeAsset(asset))
	}
}

// HandleList serves the caller's own assets of one kind, newest first,
// filtered to the given status. StatusAny lists every lifecycle state.
func (h *GetHandler) HandleList(kind model.Kind, status model.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, _ := c.Get(presentation.KeyUserID).(string)

		assets, code, err := h.lister.List(c.Request().Context(), ownerID, kind, status)
		if err != nil {
			return c.JSON(code, map[string]string{"error": err.Error()})
		}

		return c.JSON(code, dto.DescribeAssets(assets))
	}
}
