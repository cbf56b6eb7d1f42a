package catalogRepo

import (
	"context"
	"errors"
	"time"

	"deskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextID atomically increments and returns the integer sequence for the given
// entity name. Catalog IDs are small integers because the public API exposes
// them in URLs.
func (r *mongoCatalogRepo) nextID(ctx context.Context, name string) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// ListLocations returns all active locations ordered by name.
func (r *mongoCatalogRepo) ListLocations(ctx context.Context) ([]models.Location, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.locations.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locs []models.Location
	if err := cursor.All(ctx, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// GetLocationByID returns a location by its integer ID.
func (r *mongoCatalogRepo) GetLocationByID(ctx context.Context, id int) (*models.Location, error) {
	var loc models.Location
	if err := r.locations.FindOne(ctx, bson.M{"id": id}).Decode(&loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// CreateLocation inserts a new location, assigning it the next sequence ID.
func (r *mongoCatalogRepo) CreateLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	id, err := r.nextID(ctx, "locations")
	if err != nil {
		return nil, err
	}
	loc.ID = id
	loc.CreatedAt = time.Now()
	loc.UpdatedAt = time.Now()

	if _, err := r.locations.InsertOne(ctx, loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation replaces the stored location document.
func (r *mongoCatalogRepo) UpdateLocation(ctx context.Context, loc models.Location) error {
	loc.UpdatedAt = time.Now()
	res, err := r.locations.ReplaceOne(ctx, bson.M{"id": loc.ID}, loc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("location not found")
	}
	return nil
}

// DeleteLocation removes a location by ID.
func (r *mongoCatalogRepo) DeleteLocation(ctx context.Context, id int) error {
	res, err := r.locations.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("location not found")
	}
	return nil
}

// ListOfferingsByLocation returns the active offerings for a location in
// insertion order.
func (r *mongoCatalogRepo) ListOfferingsByLocation(ctx context.Context, locationID int) ([]models.ServiceOffering, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.offerings.Find(ctx, bson.M{"locationId": locationID, "isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offs []models.ServiceOffering
	if err := cursor.All(ctx, &offs); err != nil {
		return nil, err
	}
	return offs, nil
}

// GetOfferingByID returns an offering by its integer ID.
func (r *mongoCatalogRepo) GetOfferingByID(ctx context.Context, id int) (*models.ServiceOffering, error) {
	var off models.ServiceOffering
	if err := r.offerings.FindOne(ctx, bson.M{"id": id}).Decode(&off); err != nil {
		return nil, err
	}
	return &off, nil
}

// CreateOffering inserts a new service offering, assigning it the next
// sequence ID.
func (r *mongoCatalogRepo) CreateOffering(ctx context.Context, off models.ServiceOffering) (*models.ServiceOffering, error) {
	id, err := r.nextID(ctx, "service_offerings")
	if err != nil {
		return nil, err
	}
	off.ID = id
	off.CreatedAt = time.Now()
	off.UpdatedAt = time.Now()

	if _, err := r.offerings.InsertOne(ctx, off); err != nil {
		return nil, err
	}
	return &off, nil
}

// UpdateOffering replaces the stored offering document.
func (r *mongoCatalogRepo) UpdateOffering(ctx context.Context, off models.ServiceOffering) error {
	off.UpdatedAt = time.Now()
	res, err := r.offerings.ReplaceOne(ctx, bson.M{"id": off.ID}, off)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("offering not found")
	}
	return nil
}

// DeleteOffering removes an offering by ID.
func (r *mongoCatalogRepo) DeleteOffering(ctx context.Context, id int) error {
	res, err := r.offerings.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("offering not found")
	}
	return nil
}
