package database

import (
	"context"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
)

type Updater interface {
	// ApplyPatch sets only the fields present in the patch and returns the
	// updated record, or ErrNotFound.
	ApplyPatch(ctx context.Context, id string, patch dto.AssetPatch) (*model.Asset, error)

	SetStatus(ctx context.Context, id string, status model.Status) error

	// SetBlobRef points the record at its stored file. Used by the trim
	// worker, which learns the derived clip's reference only after encoding.
	SetBlobRef(ctx context.Context, id, ref string) error

	IncrementViews(ctx context.Context, id string) error
}
