package database

import (
	"context"
	"errors"

	"clipvault/internal/domain/model"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("asset not found")

type Retriever interface {
	GetByID(ctx context.Context, id string) (*model.Asset, error)

	// GetByBlobRef resolves the record owning a stored file, used by the
	// streaming endpoint which addresses assets by filename.
	GetByBlobRef(ctx context.Context, kind model.Kind, ref string) (*model.Asset, error)
}
