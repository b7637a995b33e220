// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"sort"
	"time"

	"slotbook/models"
)

// AvailabilityRepository is the system of record for provider availability and bookings.
//
// Reserve is the only operation with a concurrency contract: for one
// (providerId, date, slotIndex) key, concurrent calls produce exactly one stored
// booking and every other caller gets an error matching models.ErrSlotTaken.
type AvailabilityRepository interface {
	GetConfig(ctx context.Context, providerID string) (*models.ProviderAvailability, error)
	UpdateConfig(ctx context.Context, cfg models.ProviderAvailability) error

	UpsertProvider(ctx context.Context, p models.Provider) error
	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
	ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, error)

	IsSlotFree(ctx context.Context, providerID, date string, slotIndex int) (bool, error)
	OccupiedSlots(ctx context.Context, providerID, date string) ([]int, error)
	Reserve(ctx context.Context, booking models.Booking) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// Cancel moves an active booking to CANCELLED. Cancelling an already
	// cancelled booking returns it unchanged.
	Cancel(ctx context.Context, bookingID, cancelledBy string, at time.Time) (*models.Booking, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

func sortBookings(out []models.Booking) {
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.SlotIndex != b.SlotIndex {
			return a.SlotIndex < b.SlotIndex
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
