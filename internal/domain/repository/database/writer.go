package database

import (
	"context"

	"clipvault/internal/domain/model"
)

type Writer interface {
	Write(ctx context.Context, asset *model.Asset) error
}
