// FILE: database/repository/availability/indexes.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the provider and booking indexes. The partial unique
// index on active bookings is what makes Reserve atomic.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	providerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_provider_id"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("category_active_idx"),
		},
	}
	if _, err := r.providers.Indexes().CreateMany(ctx, providerIndexes); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking_id"),
		},
		// At most one active booking per provider, date and slot.
		{
			Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "slotIndex", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_slot").
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("client_date_idx"),
		},
	}
	if _, err := r.bookings.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
