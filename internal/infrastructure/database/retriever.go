package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clipvault/internal/domain/model"
	repo "clipvault/internal/domain/repository/database"
)

type AssetRetriever struct {
	db *Database
}

func NewAssetRetriever(db *Database) *AssetRetriever {
	return &AssetRetriever{db: db}
}

func (r *AssetRetriever) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AssetRetriever) GetByBlobRef(ctx context.Context, kind model.Kind, ref string) (*model.Asset, error) {
	return r.findOne(ctx, bson.M{"kind": kind, "blob_ref": ref})
}

func (r *AssetRetriever) findOne(ctx context.Context, filter bson.M) (*model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(AssetCollection)

	var asset model.Asset
	err := coll.FindOne(ctx, filter).Decode(&asset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}

		return nil, err
	}

	return &asset, nil
}
