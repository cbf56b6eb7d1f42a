package catalog

import (
	"context"
	"encoding/json"
	"strconv"

	"deskhive/models"

	"go.uber.org/zap"
)

const (
	locationsCacheKey    = "catalog:locations"
	offeringsCachePrefix = "catalog:offerings:"
)

// ListLocations returns the active locations, serving from cache when warm.
func (s *DefaultCatalogService) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if s.readCache(ctx, locationsCacheKey, &locs) {
		return locs, nil
	}

	locs, err := s.Repo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, locationsCacheKey, locs)
	return locs, nil
}

// ListOfferings returns the active offerings for a location, serving from
// cache when warm. An empty result is valid: a city may have no packages yet.
func (s *DefaultCatalogService) ListOfferings(ctx context.Context, locationID int) ([]models.ServiceOffering, error) {
	key := offeringsCachePrefix + strconv.Itoa(locationID)

	var offs []models.ServiceOffering
	if s.readCache(ctx, key, &offs) {
		return offs, nil
	}

	offs, err := s.Repo.ListOfferingsByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, key, offs)
	return offs, nil
}

// CreateLocation adds a location and invalidates the cache.
func (s *DefaultCatalogService) CreateLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	created, err := s.Repo.CreateLocation(ctx, loc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, locationsCacheKey)
	return created, nil
}

// UpdateLocation updates a location and invalidates the cache.
func (s *DefaultCatalogService) UpdateLocation(ctx context.Context, loc models.Location) error {
	if err := s.Repo.UpdateLocation(ctx, loc); err != nil {
		return err
	}
	s.invalidate(ctx, locationsCacheKey)
	return nil
}

// DeleteLocation removes a location and invalidates the cache.
func (s *DefaultCatalogService) DeleteLocation(ctx context.Context, id int) error {
	if err := s.Repo.DeleteLocation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, locationsCacheKey, offeringsCachePrefix+strconv.Itoa(id))
	return nil
}

// CreateOffering adds an offering and invalidates its location's cache entry.
func (s *DefaultCatalogService) CreateOffering(ctx context.Context, off models.ServiceOffering) (*models.ServiceOffering, error) {
	created, err := s.Repo.CreateOffering(ctx, off)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, offeringsCachePrefix+strconv.Itoa(off.LocationID))
	return created, nil
}

// UpdateOffering updates an offering and invalidates its location's cache entry.
func (s *DefaultCatalogService) UpdateOffering(ctx context.Context, off models.ServiceOffering) error {
	if err := s.Repo.UpdateOffering(ctx, off); err != nil {
		return err
	}
	s.invalidate(ctx, offeringsCachePrefix+strconv.Itoa(off.LocationID))
	return nil
}

// DeleteOffering removes an offering. The location is unknown here, so the
// offering is fetched first to invalidate the right cache entry.
func (s *DefaultCatalogService) DeleteOffering(ctx context.Context, id int) error {
	off, err := s.Repo.GetOfferingByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteOffering(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, offeringsCachePrefix+strconv.Itoa(off.LocationID))
	return nil
}

// readCache loads a cached JSON value into out. A cache miss or an
// unavailable Redis is not an error, just a cold read.
func (s *DefaultCatalogService) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.Cache == nil {
		return false
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		s.Logger.Warn("discarding corrupt catalog cache entry", zap.String("key", key))
		s.Cache.Del(ctx, key)
		return false
	}
	return true
}

func (s *DefaultCatalogService) writeCache(ctx context.Context, key string, v interface{}) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache catalog response", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultCatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		s.Logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}
