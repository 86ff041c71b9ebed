package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clipvault/internal/domain/entity"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/internal/domain/repository/database"
	"clipvault/pkg/utils"
)

// ErrRangeNotSatisfiable is returned when a byte range falls outside the
// blob, or cannot be parsed at all.
var ErrRangeNotSatisfiable = errors.New("requested range not satisfiable")

// defaultChunkBytes bounds an open-ended range request: "bytes=N-" yields at
// most this many bytes so players can probe a file without pulling it whole.
const defaultChunkBytes int64 = 1 << 20

// Streamer resolves a stored file back to its record, applies the read gate
// and opens a bounded reader over the requested byte range.
type Streamer struct {
	retriever database.Retriever
	blobs     blob.Store
}

func NewStreamer(retriever database.Retriever, blobs blob.Store) *Streamer {
	return &Streamer{
		retriever: retriever,
		blobs:     blobs,
	}
}

// Stream opens the blob named by filename. rangeHeader is the raw Range
// request header, empty for a full-body request. On a 416 the returned
// source carries only Size, for the Content-Range: bytes */<size> reply.
func (s *Streamer) Stream(ctx context.Context, requesterID string, kind model.Kind,
	filename, rangeHeader string,
) (*entity.StreamSource, int, error) {
	asset, err := s.retriever.GetByBlobRef(ctx, kind, filename)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, http.StatusNotFound, ErrAssetNotFound
		}

		return nil, http.StatusInternalServerError, err
	}

	if !model.CanRead(requesterID, asset) {
		return nil, http.StatusUnauthorized, ErrAccessDenied
	}

	size, err := s.blobs.Size(ctx, kind, asset.BlobRef)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, http.StatusNotFound, ErrAssetNotFound
		}

		return nil, http.StatusInternalServerError, err
	}

	contentType := utils.ContentTypeForFilename(asset.BlobRef)

	if rangeHeader == "" {
		reader, err := s.blobs.OpenRange(ctx, kind, asset.BlobRef, 0, blob.WholeBlob)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}

		return &entity.StreamSource{
			Reader:      reader,
			Start:       0,
			End:         size - 1,
			Size:        size,
			ContentType: contentType,
		}, http.StatusOK, nil
	}

	start, end, ok := parseRange(rangeHeader, size)
	if !ok {
		return &entity.StreamSource{Size: size}, http.StatusRequestedRangeNotSatisfiable, ErrRangeNotSatisfiable
	}

	reader, err := s.blobs.OpenRange(ctx, kind, asset.BlobRef, start, end)
	if err != nil {
		if errors.Is(err, blob.ErrInvalidRange) {
			return &entity.StreamSource{Size: size}, http.StatusRequestedRangeNotSatisfiable, ErrRangeNotSatisfiable
		}

		return nil, http.StatusInternalServerError, err
	}

	return &entity.StreamSource{
		Reader:      reader,
		Start:       start,
		End:         end,
		Size:        size,
		ContentType: contentType,
		Partial:     true,
	}, http.StatusPartialContent, nil
}

// parseRange interprets "bytes=<start>-[<end>]" against a blob of size
// bytes. A missing end defaults to one chunk past start, clamped to the last
// byte, so the returned window is min(defaultChunkBytes, size-start) long.
func parseRange(header string, size int64) (start, end int64, ok bool) {
	spec, found := strings.CutPrefix(strings.TrimSpace(header), "bytes=")
	if !found {
		return 0, 0, false
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found {
		return 0, 0, false
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 || start >= size {
		return 0, 0, false
	}

	if strings.TrimSpace(endStr) == "" {
		end = start + defaultChunkBytes - 1
	} else {
		end, err = strconv.ParseInt(strings.TrimSpace(endStr), 10, 64)
		if err != nil || end < start {
			return 0, 0, false
		}
	}
	if end > size-1 {
		end = size - 1
	}

	return start, end, true
}
