package orderRepo

import (
	"context"

	"deskhive/database"
	"deskhive/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// OrderRepository persists checkout orders and their status transitions.
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (string, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (*models.Order, error)
	MarkPaid(ctx context.Context, id string, providerPaymentID string) error
	UpdateStatus(ctx context.Context, id string, status string) error
	ListByStatus(ctx context.Context, status string, limit int64) ([]models.Order, error)
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo returns a new OrderRepository instance using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	repo := &mongoOrderRepo{
		coll: database.DB().Collection("orders"),
	}
	repo.ensureIndexes()
	return repo
}
