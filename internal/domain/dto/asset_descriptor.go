package dto

import (
	"fmt"
	"time"

	"clipvault/internal/domain/model"
)

// AssetDescriptor is the JSON shape returned for an asset. The public URL is
// derived from the blob reference, never stored.
type AssetDescriptor struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	OwnerID         string    `json:"ownerId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Filename        string    `json:"filename"`
	URL             string    `json:"url"`
	IsPublic        bool      `json:"isPublic"`
	Status          string    `json:"status"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	ViewCount       int64     `json:"viewCount,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DescribeAsset maps a model asset to its response shape.
func DescribeAsset(a *model.Asset) AssetDescriptor {
	d := AssetDescriptor{
		ID:          a.ID,
		Kind:        string(a.Kind),
		OwnerID:     a.OwnerID,
		Title:       a.Title,
		Description: a.Description,
		Filename:    a.BlobRef,
		URL:         fmt.Sprintf("/files/%s/%s", a.Kind.StoragePrefix(), a.BlobRef),
		IsPublic:    a.IsPublic,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
	}
	if a.Kind == model.KindVideo {
		d.DurationSeconds = a.DurationSeconds
		d.ViewCount = a.ViewCount
	}

	return d
}

// DescribeAssets maps a listing preserving order.
func DescribeAssets(assets []model.Asset) []AssetDescriptor {
	out := make([]AssetDescriptor, 0, len(assets))
	for i := range assets {
		out = append(out, DescribeAsset(&assets[i]))
	}

	return out
}
