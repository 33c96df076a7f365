package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the indexes every deployment relies on. Safe to
// call on startup; Mongo treats existing indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := &mongoUserRepository{collection: db.Collection("users")}
	if err := users.CreateIndexes(ctx); err != nil {
		return err
	}

	orders := &mongoOrderRepository{collection: db.Collection("orders")}
	return orders.CreateIndexes(ctx)
}
