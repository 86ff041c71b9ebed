package model

import "time"

// Asset is one uploaded media item: a video recording or a screenshot,
// together with the reference to its stored bytes.
type Asset struct {
	ID              string    `bson:"_id"`
	Kind            Kind      `bson:"kind"`
	OwnerID         string    `bson:"owner_id"`
	Title           string    `bson:"title"`
	Description     string    `bson:"description"`
	BlobRef         string    `bson:"blob_ref"`
	IsPublic        bool      `bson:"is_public"`
	Status          Status    `bson:"status"`
	DurationSeconds int       `bson:"duration_seconds"`
	ViewCount       int64     `bson:"view_count"`
	CreatedAt       time.Time `bson:"created_at"`
}
