package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
)

type mongoCategoryRepository struct {
	collection *mongo.Collection
}

func NewMongoCategoryRepository(db *mongo.Database) CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection("categories"),
	}
}

func (m *mongoCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := m.collection.InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = id
	}
	return nil
}

func (m *mongoCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

func (m *mongoCategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	update := bson.M{
		"$set": bson.M{
			"name":        category.Name,
			"description": category.Description,
			"updatedAt":   time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Category
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": category.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &updated, nil
}

func (m *mongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
