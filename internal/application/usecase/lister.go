package usecase

import (
	"context"
	"errors"
	"net/http"

	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/database"
)

// Lister returns an owner's assets of one kind, optionally filtered by
// lifecycle status. The caller decides the filter; StatusAny lists all.
type Lister struct {
	lister database.Lister
}

func NewLister(lister database.Lister) *Lister {
	return &Lister{lister: lister}
}

func (l *Lister) List(ctx context.Context, ownerID string, kind model.Kind,
	status model.Status,
) ([]model.Asset, int, error) {
	assets, err := l.lister.ListByOwner(ctx, kind, ownerID, status)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to retrieve assets")
	}

	return assets, http.StatusOK, nil
}
