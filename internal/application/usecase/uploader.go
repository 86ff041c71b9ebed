package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/internal/domain/repository/database"
	"clipvault/pkg/logger"
)

var (
	ErrBadExtension = errors.New("file extension is not allowed for this media type")
	ErrBadMIME      = errors.New("content type is not allowed for this media type")
	ErrTooLarge     = errors.New("file exceeds the size limit for this media type")
)

// sniffLen is how much of the stream the content sniffer may consume before
// the bytes are handed back to the storage writer.
const sniffLen = 3072

// Uploader validates an incoming file against its kind's allow-lists and
// size ceiling, streams it into the blob store and commits the record. A
// failed record write removes the just-stored blob so no orphan survives.
type Uploader struct {
	blobs  blob.Store
	writer database.Writer
}

func NewUploader(blobs blob.Store, writer database.Writer) *Uploader {
	return &Uploader{
		blobs:  blobs,
		writer: writer,
	}
}

func (u *Uploader) Upload(ctx context.Context, ownerID string, kind model.Kind,
	in dto.UploadInput,
) (*model.Asset, int, error) {
	ext := filepath.Ext(in.Filename)
	if !kind.AcceptsExtension(ext) {
		return nil, http.StatusBadRequest, ErrBadExtension
	}
	if !kind.AcceptsMIME(in.DeclaredMIME) {
		return nil, http.StatusBadRequest, ErrBadMIME
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, http.StatusInternalServerError, err
	}
	head = head[:n]

	if sniffed := mimetype.Detect(head); !kind.AcceptsMIME(sniffed.String()) {
		return nil, http.StatusBadRequest, ErrBadMIME
	}

	body := io.MultiReader(bytes.NewReader(head), in.Body)
	result, err := u.blobs.Put(ctx, kind, in.Filename, newCappedReader(body, kind.MaxBytes()))
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, http.StatusBadRequest, ErrTooLarge
		}

		return nil, http.StatusInternalServerError, err
	}

	title := in.Title
	if title == "" {
		title = kind.DefaultTitle()
	}

	asset := &model.Asset{
		ID:          uuid.NewString(),
		Kind:        kind,
		OwnerID:     ownerID,
		Title:       title,
		Description: in.Description,
		BlobRef:     result.Ref,
		IsPublic:    in.IsPublic,
		Status:      kind.InitialStatus(),
		CreatedAt:   time.Now().UTC(),
	}
	if kind == model.KindVideo {
		asset.DurationSeconds = in.DurationSeconds
	}

	if err := u.writer.Write(ctx, asset); err != nil {
		if rmErr := u.blobs.Delete(ctx, kind, result.Ref); rmErr != nil {
			logger.Error("failed to remove blob after record write failed", "ref", result.Ref, "err", rmErr)
		}

		return nil, http.StatusInternalServerError, errors.New("couldn't add asset to database")
	}

	return asset, http.StatusOK, nil
}

// cappedReader fails the copy once more than max bytes have passed through,
// which aborts the storage write mid-stream instead of buffering the file.
type cappedReader struct {
	r    io.Reader
	max  int64
	read int64
}

func newCappedReader(r io.Reader, max int64) *cappedReader {
	return &cappedReader{r: r, max: max}
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.read > c.max {
		return n, ErrTooLarge
	}

	return n, err
}
