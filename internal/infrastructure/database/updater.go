package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	repo "clipvault/internal/domain/repository/database"
)

type AssetUpdater struct {
	db *Database
}

func NewAssetUpdater(db *Database) *AssetUpdater {
	return &AssetUpdater{db: db}
}

// ApplyPatch sets exactly the fields carried by the patch. A nil pointer is
// skipped; a pointer to the empty string is written as the empty string.
func (u *AssetUpdater) ApplyPatch(ctx context.Context, id string, patch dto.AssetPatch) (*model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, u.db.QueryTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsPublic != nil {
		set["is_public"] = *patch.IsPublic
	}

	coll := u.db.Client.Database(u.db.DBName).Collection(AssetCollection)

	if len(set) == 0 {
		var asset model.Asset
		err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, repo.ErrNotFound
			}

			return nil, err
		}

		return &asset, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var asset model.Asset
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&asset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}

		return nil, err
	}

	return &asset, nil
}

func (u *AssetUpdater) SetStatus(ctx context.Context, id string, status model.Status) error {
	ctx, cancel := context.WithTimeout(ctx, u.db.QueryTimeout)
	defer cancel()

	coll := u.db.Client.Database(u.db.DBName).Collection(AssetCollection)

	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (u *AssetUpdater) SetBlobRef(ctx context.Context, id, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, u.db.QueryTimeout)
	defer cancel()

	coll := u.db.Client.Database(u.db.DBName).Collection(AssetCollection)

	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"blob_ref": ref}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (u *AssetUpdater) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, u.db.QueryTimeout)
	defer cancel()

	coll := u.db.Client.Database(u.db.DBName).Collection(AssetCollection)

	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"view_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
