package abstraction

import (
	"context"

	"clipvault/internal/domain/entity"
	"clipvault/internal/domain/model"
)

type Streamer interface {
	Stream(ctx context.Context, requesterID string, kind model.Kind,
		filename, rangeHeader string) (*entity.StreamSource, int, error)
}
