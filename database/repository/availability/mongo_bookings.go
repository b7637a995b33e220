// File: database/repository/availability/mongo_bookings.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotbook/models"
)

func activeSlotFilter(providerID, date string) bson.M {
	return bson.M{"providerId": providerID, "date": date, "active": true}
}

func (r *MongoRepo) IsSlotFree(ctx context.Context, providerID, date string, slotIndex int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := activeSlotFilter(providerID, date)
	filter["slotIndex"] = slotIndex
	n, err := r.bookings.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return n == 0, nil
}

func (r *MongoRepo) OccupiedSlots(ctx context.Context, providerID, date string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"slotIndex": 1, "_id": 0}).
		SetSort(bson.D{{Key: "slotIndex", Value: 1}})
	cursor, err := r.bookings.Find(ctx, activeSlotFilter(providerID, date), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied slots: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SlotIndex int `bson:"slotIndex"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode occupied slots: %w", err)
	}
	out := make([]int, len(rows))
	for i, row := range rows {
		out[i] = row.SlotIndex
	}
	return out, nil
}

// Reserve relies on the partial unique index on (providerId, date, slotIndex)
// over active bookings: the losing insert fails with a duplicate key error.
func (r *MongoRepo) Reserve(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}

	if _, err := r.bookings.InsertOne(ctx, toDocument(booking)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewSlotTakenError("slot %d on %s is already booked", booking.SlotIndex, booking.Date)
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bookingDocument
	err := r.bookings.FindOne(ctx, bson.M{"id": bookingID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFoundError("booking %s not found", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &doc.Booking, nil
}

// Cancel only matches active documents, so a racing cancel falls through to a
// plain read of the already cancelled booking.
func (r *MongoRepo) Cancel(ctx context.Context, bookingID, cancelledBy string, at time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":      models.BookingStatusCancelled,
		"active":      false,
		"cancelledAt": at,
		"cancelledBy": cancelledBy,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDocument
	err := r.bookings.FindOneAndUpdate(ctx, bson.M{"id": bookingID, "active": true}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return r.GetBooking(ctx, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return &doc.Booking, nil
}

func (r *MongoRepo) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ProviderID != "" {
		query["providerId"] = filter.ProviderID
	}
	if filter.ClientID != "" {
		query["clientId"] = filter.ClientID
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "slotIndex", Value: 1},
		{Key: "createdAt", Value: 1},
	})
	cursor, err := r.bookings.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	out := make([]models.Booking, len(docs))
	for i, d := range docs {
		out[i] = d.Booking
	}
	return out, nil
}
