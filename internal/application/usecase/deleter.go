package usecase

import (
	"context"
	"errors"
	"net/http"

	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/internal/domain/repository/database"
)

// Deleter removes an asset's blob first, then its record. Blob removal is
// idempotent, so a retry after a half-failed delete still converges; once
// the record is gone a second delete reports not found.
type Deleter struct {
	retriever database.Retriever
	remover   database.Remover
	blobs     blob.Store
}

func NewDeleter(retriever database.Retriever, remover database.Remover, blobs blob.Store) *Deleter {
	return &Deleter{
		retriever: retriever,
		remover:   remover,
		blobs:     blobs,
	}
}

func (d *Deleter) Delete(ctx context.Context, requesterID, id string, kind model.Kind) (int, error) {
	asset, err := d.retriever.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return http.StatusNotFound, ErrAssetNotFound
		}

		return http.StatusInternalServerError, err
	}
	if asset.Kind != kind {
		return http.StatusNotFound, ErrAssetNotFound
	}

	if !model.CanWrite(requesterID, asset) {
		return http.StatusUnauthorized, ErrAccessDenied
	}

	if asset.BlobRef != "" {
		if err := d.blobs.Delete(ctx, kind, asset.BlobRef); err != nil {
			return http.StatusInternalServerError, errors.New("failed to remove file from storage")
		}
	}

	if err := d.remover.RemoveByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return http.StatusNotFound, ErrAssetNotFound
		}

		return http.StatusInternalServerError, errors.New("failed to remove asset from database")
	}

	return http.StatusOK, nil
}
