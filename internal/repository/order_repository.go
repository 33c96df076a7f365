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

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := m.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (m *mongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (m *mongoOrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	return m.find(ctx, bson.M{"user": userID}, -1)
}

func (m *mongoOrderRepository) List(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return m.find(ctx, filter, -1)
}

// UpdateStatus applies a partial lifecycle update in one document write.
// When the update touches refundStatus, the filter pins the refund state
// that was read, so a racing refund request surfaces as a conflict instead
// of being overwritten.
func (m *mongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, update StatusUpdate) (*domain.Order, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.PaymentStatus != nil {
		set["paymentStatus"] = *update.PaymentStatus
	}
	if update.RefundStatus != nil {
		set["refundStatus"] = *update.RefundStatus
	}

	filter := bson.M{"_id": id}
	if update.RefundStatus != nil && update.ExpectedRefundStatus != nil {
		filter["refundStatus"] = *update.ExpectedRefundStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Order
	err := m.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing order from a lost refund-state race.
			if _, getErr := m.GetByID(ctx, id); getErr == nil {
				return nil, ErrConcurrentModification
			}
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &updated, nil
}

// MarkRefundRequested flips refundRequested and refundStatus together in a
// single conditional write, so the flag and the state can never diverge.
func (m *mongoOrderRepository) MarkRefundRequested(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	filter := bson.M{"_id": id, "refundRequested": false}
	update := bson.M{
		"$set": bson.M{
			"refundRequested": true,
			"refundStatus":    domain.RefundStatusRequested,
			"updatedAt":       time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Order
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, getErr := m.GetByID(ctx, id); getErr == nil {
				return nil, ErrRefundAlreadyRequested
			}
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to mark refund requested: %w", err)
	}

	return &updated, nil
}

// ListPaidBetween returns settled orders created in [from, to], both ends
// inclusive, oldest first.
func (m *mongoOrderRepository) ListPaidBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	filter := bson.M{
		"paymentStatus": domain.PaymentStatusPaid,
		"createdAt":     bson.M{"$gte": from, "$lte": to},
	}
	return m.find(ctx, filter, 1)
}

func (m *mongoOrderRepository) find(ctx context.Context, filter bson.M, sortDir int) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: sortDir}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "paymentStatus", Value: 1}, {Key: "createdAt", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	return nil
}
