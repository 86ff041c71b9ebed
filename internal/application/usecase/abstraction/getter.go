package abstraction

import (
	"context"

	"clipvault/internal/domain/model"
)

type Getter interface {
	Get(ctx context.Context, requesterID, id string, kind model.Kind) (*model.Asset, int, error)
}
