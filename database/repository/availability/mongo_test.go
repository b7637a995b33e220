package availabilityRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"slotbook/models"
)

func toBsonD(t *testing.T, v any) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("reserve maps duplicate key to slot taken", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: slotbook.bookings index: unique_active_slot",
		}))

		repo := NewMongoRepo(mt.DB)
		_, err := repo.Reserve(ctx, newBooking("p1", "c1", "2030-01-07", 0))
		assert.True(mt, errors.Is(err, models.ErrSlotTaken))
	})

	mt.Run("reserve assigns an id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewMongoRepo(mt.DB)
		b, err := repo.Reserve(ctx, newBooking("p1", "c1", "2030-01-07", 0))
		require.NoError(mt, err)
		assert.NotEmpty(mt, b.ID)
		assert.Equal(mt, models.BookingStatusConfirmed, b.Status)
	})

	mt.Run("get config of unknown provider", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "slotbook.providers", mtest.FirstBatch))

		repo := NewMongoRepo(mt.DB)
		_, err := repo.GetConfig(ctx, "ghost")
		assert.True(mt, errors.Is(err, models.ErrNotFound))
	})

	mt.Run("get config decodes availability", func(mt *mtest.T) {
		p := models.Provider{
			ID:           "p1",
			Name:         "Dr. Achieng",
			Category:     "doctor",
			Active:       true,
			Availability: models.DefaultAvailability("p1"),
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "slotbook.providers", mtest.FirstBatch, toBsonD(mt.T, p)))

		repo := NewMongoRepo(mt.DB)
		cfg, err := repo.GetConfig(ctx, "p1")
		require.NoError(mt, err)
		assert.Equal(mt, 4, cfg.SlotCount)
		assert.True(mt, cfg.WorkingDays.On(time.Friday))
		assert.False(mt, cfg.WorkingDays.On(time.Saturday))
	})

	mt.Run("update config of unknown provider", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		repo := NewMongoRepo(mt.DB)
		err := repo.UpdateConfig(ctx, models.DefaultAvailability("ghost"))
		assert.True(mt, errors.Is(err, models.ErrNotFound))
	})

	mt.Run("cancel of an already cancelled booking reads it back", func(mt *mtest.T) {
		at := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
		b := newBooking("p1", "c1", "2030-01-07", 0)
		b.ID = "b1"
		b.Status = models.BookingStatusCancelled
		b.CancelledAt = &at
		b.CancelledBy = "c1"

		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			mtest.CreateCursorResponse(0, "slotbook.bookings", mtest.FirstBatch, toBsonD(mt.T, toDocument(b))),
		)

		repo := NewMongoRepo(mt.DB)
		got, err := repo.Cancel(ctx, "b1", "p1", at.Add(time.Hour))
		require.NoError(mt, err)
		assert.Equal(mt, models.BookingStatusCancelled, got.Status)
		assert.Equal(mt, "c1", got.CancelledBy)
	})
}
