package usecase

import (
	"context"
	"errors"
	"net/http"

	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/database"
	"clipvault/pkg/logger"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrAccessDenied  = errors.New("access denied")
)

// Getter retrieves a single asset, applying the read gate. Reading one's own
// private video counts a view; public reads do not.
type Getter struct {
	retriever database.Retriever
	updater   database.Updater
}

func NewGetter(retriever database.Retriever, updater database.Updater) *Getter {
	return &Getter{
		retriever: retriever,
		updater:   updater,
	}
}

func (g *Getter) Get(ctx context.Context, requesterID, id string, kind model.Kind) (*model.Asset, int, error) {
	asset, err := g.retriever.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, http.StatusNotFound, ErrAssetNotFound
		}

		return nil, http.StatusInternalServerError, err
	}
	if asset.Kind != kind {
		return nil, http.StatusNotFound, ErrAssetNotFound
	}

	if !model.CanRead(requesterID, asset) {
		return nil, http.StatusUnauthorized, ErrAccessDenied
	}

	if kind == model.KindVideo && !asset.IsPublic {
		if err := g.updater.IncrementViews(ctx, id); err != nil {
			logger.Error("failed to increment view count", "id", id, "err", err)
		} else {
			asset.ViewCount++
		}
	}

	return asset, http.StatusOK, nil
}
