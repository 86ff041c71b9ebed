package abstraction

import (
	"context"

	"clipvault/internal/domain/model"
)

type Deleter interface {
	Delete(ctx context.Context, requesterID, id string, kind model.Kind) (int, error)
}
