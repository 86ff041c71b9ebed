package abstraction

import (
	"context"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
)

type Trimmer interface {
	Trim(ctx context.Context, requesterID, id string,
		req dto.TrimRequest) (*model.Asset, int, error)
}
