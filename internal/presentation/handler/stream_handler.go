package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"clipvault/internal/application/usecase/abstraction"
	"clipvault/internal/domain/model"
	"clipvault/internal/presentation"
)

type StreamHandler struct {
	streamer abstraction.Streamer
}

func NewStreamHandler(streamer abstraction.Streamer) *StreamHandler {
	return &StreamHandler{
		streamer: streamer,
	}
}

// HandleStream serves a stored file, honoring Range requests. An open-ended
// range yields at most one chunk; an unsatisfiable one answers 416 with the
// blob's total size.
func (h *StreamHandler) HandleStream(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		src, status, err := h.streamer.Stream(c.Request().Context(), requesterID, kind,
			c.Param(presentation.FilenameParam), c.Request().Header.Get("Range"))
		if err != nil {
			if status == http.StatusRequestedRangeNotSatisfiable {
				c.Response().Header().Set("Content-Range", fmt.Sprintf("bytes */%d", src.Size))

				return c.NoContent(status)
			}

			return c.JSON(status, map[string]string{"error": err.Error()})
		}
		defer src.Reader.Close()

		c.Response().Header().Set("Accept-Ranges", "bytes")
		c.Response().Header().Set("Content-Length", strconv.FormatInt(src.Length(), 10))
		if src.Partial {
			c.Response().Header().Set("Content-Range",
				fmt.Sprintf("bytes %d-%d/%d", src.Start, src.End, src.Size))
		}

		return c.Stream(status, src.ContentType, src.Reader)
	}
}

// HandleHead answers with the same headers a full GET would carry, without
// the body.
func (h *StreamHandler) HandleHead(kind model.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterID, _ := c.Get(presentation.KeyUserID).(string)

		src, status, err := h.streamer.Stream(c.Request().Context(), requesterID, kind,
			c.Param(presentation.FilenameParam), "")
		if err != nil {
			c.Response().Header().Set(presentation.ReasonTag, err.Error())

			return c.NoContent(status)
		}
		src.Reader.Close()

		c.Response().Header().Set("Accept-Ranges", "bytes")
		c.Response().Header().Set("Content-Type", src.ContentType)
		c.Response().Header().Set("Content-Length", strconv.FormatInt(src.Size, 10))

		return c.NoContent(http.StatusOK)
	}
}
