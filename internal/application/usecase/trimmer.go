package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/broker"
	"clipvault/internal/domain/repository/database"
	"clipvault/pkg/logger"
)

var (
	ErrBadTrimRange = errors.New("trim range must satisfy 0 <= start < end")
	ErrNotReady     = errors.New("source video is not ready")
)

// Trimmer creates a derived clip from an existing video. The source is never
// touched: a new asset is written in processing state and a job is queued
// for the worker to cut and attach the clip's bytes.
type Trimmer struct {
	retriever database.Retriever
	writer    database.Writer
	remover   database.Remover
	publisher broker.Publisher
}

func NewTrimmer(retriever database.Retriever, writer database.Writer,
	remover database.Remover, publisher broker.Publisher,
) *Trimmer {
	return &Trimmer{
		retriever: retriever,
		writer:    writer,
		remover:   remover,
		publisher: publisher,
	}
}

func (t *Trimmer) Trim(ctx context.Context, requesterID, id string,
	req dto.TrimRequest,
) (*model.Asset, int, error) {
	if !req.Valid() {
		return nil, http.StatusBadRequest, ErrBadTrimRange
	}

	source, err := t.retriever.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, http.StatusNotFound, ErrAssetNotFound
		}

		return nil, http.StatusInternalServerError, err
	}
	if source.Kind != model.KindVideo {
		return nil, http.StatusNotFound, ErrAssetNotFound
	}

	if !model.CanWrite(requesterID, source) {
		return nil, http.StatusUnauthorized, ErrAccessDenied
	}

	if source.Status != model.StatusReady {
		return nil, http.StatusConflict, ErrNotReady
	}

	derived := &model.Asset{
		ID:              uuid.NewString(),
		Kind:            model.KindVideo,
		OwnerID:         source.OwnerID,
		Title:           fmt.Sprintf("%s (trimmed)", source.Title),
		Description:     source.Description,
		IsPublic:        source.IsPublic,
		Status:          model.StatusProcessing,
		DurationSeconds: int(req.EndSeconds - req.StartSeconds),
		CreatedAt:       time.Now().UTC(),
	}

	if err := t.writer.Write(ctx, derived); err != nil {
		return nil, http.StatusInternalServerError, errors.New("couldn't add asset to database")
	}

	job := dto.TrimJob{
		SourceAssetID:  source.ID,
		DerivedAssetID: derived.ID,
		StartSeconds:   req.StartSeconds,
		EndSeconds:     req.EndSeconds,
	}
	body, err := job.Encode()
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	if err := t.publisher.Publish(ctx, body); err != nil {
		if rmErr := t.remover.RemoveByID(ctx, derived.ID); rmErr != nil {
			logger.Error("failed to remove derived asset after publish failed", "id", derived.ID, "err", rmErr)
		}

		return nil, http.StatusInternalServerError, errors.New("failed to queue trim job")
	}

	return derived, http.StatusAccepted, nil
}
