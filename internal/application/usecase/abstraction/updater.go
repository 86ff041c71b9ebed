package abstraction

import (
	"context"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
)

type Updater interface {
	Update(ctx context.Context, requesterID, id string, kind model.Kind,
		patch dto.AssetPatch) (*model.Asset, int, error)

	Archive(ctx context.Context, requesterID, id string, kind model.Kind) (*model.Asset, int, error)
}
