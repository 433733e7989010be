// Package dbmongo holds the document-store side of the feed: the Mongo
// connection and the posts collection.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zentra/internal/config"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
	Posts    *mongo.Collection
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	return Connect(c.GetMongoURI(), c.MongoDB.Database, c.MongoDB.PostsCollection)
}

func Connect(uri, database, postsCollection string) (*MongoClient, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &MongoClient{
		Client:   client,
		Database: db,
		Posts:    db.Collection(postsCollection),
	}, nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
