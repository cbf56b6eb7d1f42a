package orderRepo

import (
	"context"
	"errors"
	"log"
	"time"

	"deskhive/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new order and returns its ID.
func (r *mongoOrderRepo) Create(ctx context.Context, order models.Order) (string, error) {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return "", err
	}
	return order.ID, nil
}

// GetByID returns an order by its ID.
func (r *mongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByProviderOrderID returns the order correlated with a payment-provider
// order. This is the lookup the verification endpoint uses.
func (r *mongoOrderRepo) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"providerOrderId": providerOrderID}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid records a successful verification. Only a pending order may be
// marked paid; anything else means the proof was already consumed.
func (r *mongoOrderRepo) MarkPaid(ctx context.Context, id string, providerPaymentID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{
			"status":            models.OrderStatusPaid,
			"providerPaymentId": providerPaymentID,
			"updatedAt":         time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("order not pending")
	}
	return nil
}

// UpdateStatus sets the order status unconditionally.
func (r *mongoOrderRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("order not found")
	}
	return nil
}

// ListByStatus returns the most recent orders with the given status.
func (r *mongoOrderRepo) ListByStatus(ctx context.Context, status string, limit int64) ([]models.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *mongoOrderRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerOrderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, idx); err != nil {
		log.Printf("failed to create order indexes: %v", err)
	}
}
