package database

import (
	"context"

	"clipvault/internal/domain/model"
)

type AssetWriter struct {
	db *Database
}

func NewAssetWriter(db *Database) *AssetWriter {
	return &AssetWriter{db: db}
}

func (w *AssetWriter) Write(ctx context.Context, asset *model.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	coll := w.db.Client.Database(w.db.DBName).Collection(AssetCollection)

	_, err := coll.InsertOne(ctx, asset)

	return err
}
