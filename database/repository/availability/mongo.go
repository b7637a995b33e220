// File: database/repository/availability/mongo.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotbook/models"
)

type MongoRepo struct {
	providers *mongo.Collection
	bookings  *mongo.Collection
}

// bookingDocument adds the "active" flag the partial unique index filters on.
type bookingDocument struct {
	models.Booking `bson:",inline"`
	Active         bool `bson:"active"`
}

func toDocument(b models.Booking) bookingDocument {
	return bookingDocument{Booking: b, Active: b.Status.Active()}
}

// NewMongoRepo stores providers and bookings in two collections of db.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		providers: db.Collection("providers"),
		bookings:  db.Collection("bookings"),
	}
}

func (r *MongoRepo) GetConfig(ctx context.Context, providerID string) (*models.ProviderAvailability, error) {
	p, err := r.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &p.Availability, nil
}

func (r *MongoRepo) UpdateConfig(ctx context.Context, cfg models.ProviderAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"availability": cfg, "updatedAt": cfg.UpdatedAt}}
	res, err := r.providers.UpdateOne(ctx, bson.M{"id": cfg.ProviderID}, update)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("provider %s not found", cfg.ProviderID)
	}
	return nil
}

func (r *MongoRepo) UpsertProvider(ctx context.Context, p models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.Availability.ProviderID = p.ID
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = p.UpdatedAt
	}
	update := bson.M{
		"$set": bson.M{
			"name":         p.Name,
			"category":     p.Category,
			"specialty":    p.Specialty,
			"active":       p.Active,
			"availability": p.Availability,
			"updatedAt":    p.UpdatedAt,
		},
		"$setOnInsert": bson.M{"id": p.ID, "createdAt": createdAt},
	}
	_, err := r.providers.UpdateOne(ctx, bson.M{"id": p.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert provider: %w", err)
	}
	return nil
}

func (r *MongoRepo) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Provider
	err := r.providers.FindOne(ctx, bson.M{"id": providerID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFoundError("provider %s not found", providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	return &p, nil
}

func (r *MongoRepo) ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ActiveOnly {
		query["active"] = true
	}
	if filter.Category != "" {
		query["category"] = bson.M{"$regex": "^" + regexp.QuoteMeta(filter.Category) + "$", "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.providers.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Provider, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return out, nil
}
