package abstraction

import (
	"context"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
)

type Uploader interface {
	Upload(ctx context.Context, ownerID string, kind model.Kind,
		in dto.UploadInput) (*model.Asset, int, error)
}
