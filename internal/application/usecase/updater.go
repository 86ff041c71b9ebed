package usecase

import (
	"context"
	"errors"
	"net/http"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/database"
)

var (
	ErrArchived      = errors.New("asset is archived")
	ErrBadTransition = errors.New("asset cannot move to that state")
)

// Updater applies owner-only metadata patches and the archive transition.
// Archived assets are frozen: patching one is rejected, not silently ignored.
type Updater struct {
	retriever database.Retriever
	updater   database.Updater
}

func NewUpdater(retriever database.Retriever, updater database.Updater) *Updater {
	return &Updater{
		retriever: retriever,
		updater:   updater,
	}
}

func (u *Updater) Update(ctx context.Context, requesterID, id string, kind model.Kind,
	patch dto.AssetPatch,
) (*model.Asset, int, error) {
	asset, status, err := u.writable(ctx, requesterID, id, kind)
	if err != nil {
		return nil, status, err
	}

	if asset.Status == model.StatusArchived {
		return nil, http.StatusConflict, ErrArchived
	}

	updated, err := u.updater.ApplyPatch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, http.StatusNotFound, ErrAssetNotFound
		}

		return nil, http.StatusInternalServerError, err
	}

	return updated, http.StatusOK, nil
}

func (u *Updater) Archive(ctx context.Context, requesterID, id string, kind model.Kind) (*model.Asset, int, error) {
	asset, status, err := u.writable(ctx, requesterID, id, kind)
	if err != nil {
		return nil, status, err
	}

	if !asset.Status.CanTransition(model.StatusArchived) {
		return nil, http.StatusConflict, ErrBadTransition
	}

	if err := u.updater.SetStatus(ctx, id, model.StatusArchived); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	asset.Status = model.StatusArchived

	return asset, http.StatusOK, nil
}

func (u *Updater) writable(ctx context.Context, requesterID, id string, kind model.Kind) (*model.Asset, int, error) {
	asset, err := u.retriever.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, http.StatusNotFound, ErrAssetNotFound
		}

		return nil, http.StatusInternalServerError, err
	}
	if asset.Kind != kind {
		return nil, http.StatusNotFound, ErrAssetNotFound
	}

	if !model.CanWrite(requesterID, asset) {
		return nil, http.StatusUnauthorized, ErrAccessDenied
	}

	return asset, http.StatusOK, nil
}
