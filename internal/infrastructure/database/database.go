package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AssetCollection = "assets"

type Database struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initAssetCollection(db); err != nil {
		return nil, err
	}

	return db, nil
}

func initAssetCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": AssetCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil // already exists
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "kind", "owner_id", "blob_ref", "status", "created_at"},
			"properties": bson.M{
				"_id": bson.M{"bsonType": "string"},
				"kind": bson.M{
					"enum": []string{"video", "screenshot"},
				},
				"owner_id":    bson.M{"bsonType": "string"},
				"title":       bson.M{"bsonType": "string"},
				"description": bson.M{"bsonType": "string"},
				"blob_ref":    bson.M{"bsonType": "string"},
				"is_public":   bson.M{"bsonType": "bool"},
				"status": bson.M{
					"enum": []string{"processing", "ready", "error", "archived"},
				},
				"duration_seconds": bson.M{"bsonType": []string{"int", "long"}},
				"view_count":       bson.M{"bsonType": []string{"int", "long"}},
				"created_at":       bson.M{"bsonType": "date"},
			},
		},
	})

	err = db.Client.Database(db.DBName).CreateCollection(ctx, AssetCollection, collOpts)
	if err != nil {
		return err
	}

	coll := db.Client.Database(db.DBName).Collection(AssetCollection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "blob_ref", Value: 1}}},
	})

	return err
}

func (db *Database) Stop() error {
	return db.Client.Disconnect(context.Background())
}
