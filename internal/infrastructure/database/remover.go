package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	repo "clipvault/internal/domain/repository/database"
)

type AssetRemover struct {
	db *Database
}

func NewAssetRemover(db *Database) *AssetRemover {
	return &AssetRemover{db: db}
}

func (r *AssetRemover) RemoveByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(AssetCollection)

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
