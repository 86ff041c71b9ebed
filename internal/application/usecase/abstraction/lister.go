package abstraction

import (
	"context"

	"clipvault/internal/domain/model"
)

type Lister interface {
	List(ctx context.Context, ownerID string, kind model.Kind,
		status model.Status) ([]model.Asset, int, error)
}
