package catalogRepo

import (
	"context"

	"deskhive/database"
	"deskhive/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository provides access to the location and pricing catalog.
type CatalogRepository interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocationByID(ctx context.Context, id int) (*models.Location, error)
	CreateLocation(ctx context.Context, loc models.Location) (*models.Location, error)
	UpdateLocation(ctx context.Context, loc models.Location) error
	DeleteLocation(ctx context.Context, id int) error

	ListOfferingsByLocation(ctx context.Context, locationID int) ([]models.ServiceOffering, error)
	GetOfferingByID(ctx context.Context, id int) (*models.ServiceOffering, error)
	CreateOffering(ctx context.Context, off models.ServiceOffering) (*models.ServiceOffering, error)
	UpdateOffering(ctx context.Context, off models.ServiceOffering) error
	DeleteOffering(ctx context.Context, id int) error
}

type mongoCatalogRepo struct {
	locations *mongo.Collection
	offerings *mongo.Collection
	counters  *mongo.Collection
}

// NewMongoCatalogRepo returns a new CatalogRepository instance using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	repo := &mongoCatalogRepo{
		locations: db.Collection("locations"),
		offerings: db.Collection("service_offerings"),
		counters:  db.Collection("counters"),
	}
	repo.ensureIndexes()
	return repo
}
