package database

import (
	"context"

	"clipvault/internal/domain/model"
)

// Lister queries an owner's assets, newest first. A StatusAny filter returns
// every status; a concrete status returns only that one.
type Lister interface {
	ListByOwner(ctx context.Context, kind model.Kind, ownerID string, status model.Status) ([]model.Asset, error)
}
