package availabilityRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"slotbook/models"
)

// MemoryRepo keeps everything in process. One mutex guards all state, so the
// free-check and the insert in Reserve happen under the same lock.
type MemoryRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
	bookings  map[string]models.Booking
	active    map[models.SlotKey]string // slot key -> id of the booking holding it
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		providers: make(map[string]models.Provider),
		bookings:  make(map[string]models.Booking),
		active:    make(map[models.SlotKey]string),
	}
}

func (r *MemoryRepo) GetConfig(_ context.Context, providerID string) (*models.ProviderAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[providerID]
	if !ok {
		return nil, models.NewNotFoundError("provider %s not found", providerID)
	}
	cfg := p.Availability
	return &cfg, nil
}

func (r *MemoryRepo) UpdateConfig(_ context.Context, cfg models.ProviderAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[cfg.ProviderID]
	if !ok {
		return models.NewNotFoundError("provider %s not found", cfg.ProviderID)
	}
	p.Availability = cfg
	p.UpdatedAt = cfg.UpdatedAt
	r.providers[cfg.ProviderID] = p
	return nil
}

func (r *MemoryRepo) UpsertProvider(_ context.Context, p models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.providers[p.ID]; ok && p.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	}
	p.Availability.ProviderID = p.ID
	r.providers[p.ID] = p
	return nil
}

func (r *MemoryRepo) GetProvider(_ context.Context, providerID string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[providerID]
	if !ok {
		return nil, models.NewNotFoundError("provider %s not found", providerID)
	}
	return &p, nil
}

func (r *MemoryRepo) ListProviders(_ context.Context, filter models.ProviderFilter) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) IsSlotFree(_ context.Context, providerID, date string, slotIndex int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, taken := r.active[models.SlotKey{ProviderID: providerID, Date: date, SlotIndex: slotIndex}]
	return !taken, nil
}

func (r *MemoryRepo) OccupiedSlots(_ context.Context, providerID, date string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []int
	for key := range r.active {
		if key.ProviderID == providerID && key.Date == date {
			out = append(out, key.SlotIndex)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (r *MemoryRepo) Reserve(_ context.Context, booking models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := booking.Key()
	if _, taken := r.active[key]; taken {
		return nil, models.NewSlotTakenError("slot %d on %s is already booked", key.SlotIndex, key.Date)
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	r.bookings[booking.ID] = booking
	if booking.Status.Active() {
		r.active[key] = booking.ID
	}
	return &booking, nil
}

func (r *MemoryRepo) GetBooking(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, models.NewNotFoundError("booking %s not found", bookingID)
	}
	return &b, nil
}

func (r *MemoryRepo) Cancel(_ context.Context, bookingID, cancelledBy string, at time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, models.NewNotFoundError("booking %s not found", bookingID)
	}
	if b.Status == models.BookingStatusCancelled {
		return &b, nil
	}

	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &at
	b.CancelledBy = cancelledBy
	r.bookings[bookingID] = b
	if r.active[b.Key()] == bookingID {
		delete(r.active, b.Key())
	}
	return &b, nil
}

func (r *MemoryRepo) ListBookings(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if filter.Matches(b) {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}
