package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clipvault/internal/domain/model"
)

type AssetLister struct {
	db *Database
}

func NewAssetLister(db *Database) *AssetLister {
	return &AssetLister{db: db}
}

func (l *AssetLister) ListByOwner(ctx context.Context, kind model.Kind, ownerID string, status model.Status) ([]model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	coll := l.db.Client.Database(l.db.DBName).Collection(AssetCollection)

	filter := bson.M{"kind": kind, "owner_id": ownerID}
	if status != model.StatusAny {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []model.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}

	return assets, nil
}
