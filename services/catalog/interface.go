package catalog

import (
	"context"
	"time"

	catalogRepo "deskhive/database/repository/catalog"
	"deskhive/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service exposes the location and pricing catalog to the public API and the
// admin surface.
type Service interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListOfferings(ctx context.Context, locationID int) ([]models.ServiceOffering, error)

	CreateLocation(ctx context.Context, loc models.Location) (*models.Location, error)
	UpdateLocation(ctx context.Context, loc models.Location) error
	DeleteLocation(ctx context.Context, id int) error
	CreateOffering(ctx context.Context, off models.ServiceOffering) (*models.ServiceOffering, error)
	UpdateOffering(ctx context.Context, off models.ServiceOffering) error
	DeleteOffering(ctx context.Context, id int) error
}

// DefaultCatalogService implements Service with a Redis read-through cache in
// front of the Mongo catalog.
type DefaultCatalogService struct {
	Repo     catalogRepo.CatalogRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}
