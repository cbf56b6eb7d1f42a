package catalogRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *mongoCatalogRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locationIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}
	if _, err := r.locations.Indexes().CreateMany(ctx, locationIdx); err != nil {
		log.Printf("failed to create location indexes: %v", err)
	}

	offeringIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "locationId", Value: 1},
			{Key: "isActive", Value: 1},
		}},
	}
	if _, err := r.offerings.Indexes().CreateMany(ctx, offeringIdx); err != nil {
		log.Printf("failed to create offering indexes: %v", err)
	}
}
