package blob

import (
	"context"
	"errors"
	"io"

	"clipvault/internal/domain/entity"
	"clipvault/internal/domain/model"
)

var (
	// ErrNotFound is returned when a blob reference resolves to nothing.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidRange is returned for a negative or inverted byte range.
	ErrInvalidRange = errors.New("invalid byte range")
)

// WholeBlob as the end offset of OpenRange reads to the last byte.
const WholeBlob int64 = -1

// Store maps opaque references to bytes on durable storage. References are
// write-once: a ref is created by exactly one Put and removed by Delete.
type Store interface {
	// Put streams r into the store under a collision-free name derived from
	// suggestedName and returns the assigned reference.
	Put(ctx context.Context, kind model.Kind, suggestedName string, r io.Reader) (entity.PutResult, error)

	Exists(ctx context.Context, kind model.Kind, ref string) (bool, error)

	// Size returns the blob's byte length, or ErrNotFound.
	Size(ctx context.Context, kind model.Kind, ref string) (int64, error)

	// OpenRange returns a reader over the inclusive byte range [start, end].
	// end == WholeBlob means "to the last byte". The caller closes the reader.
	OpenRange(ctx context.Context, kind model.Kind, ref string, start, end int64) (io.ReadCloser, error)

	// Delete removes the blob. Deleting an absent ref is not an error.
	Delete(ctx context.Context, kind model.Kind, ref string) error
}
