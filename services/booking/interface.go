package booking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	availabilityRepo "slotbook/database/repository/availability"
	"slotbook/models"
	"slotbook/services/slots"
	"slotbook/utils"
)

var tracer = otel.Tracer("slotbook.services.booking")

// BookingService reserves and cancels slots on behalf of an authenticated session.
type BookingService interface {
	RequestBooking(ctx context.Context, session models.Session, req models.BookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, session models.Session, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, session models.Session, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, session models.Session, filter models.BookingFilter) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService on top of an availability store.
type DefaultBookingService struct {
	Store     availabilityRepo.AvailabilityRepository
	Generator *slots.Generator
	Metrics   *Metrics
	Logger    *zap.Logger

	// Now is the clock; bookings dated before Now's calendar date in Location are rejected.
	Now      func() time.Time
	Location *time.Location
}

type Option func(*DefaultBookingService)

func WithClock(now func() time.Time) Option {
	return func(s *DefaultBookingService) { s.Now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *DefaultBookingService) { s.Location = loc }
}

func WithMetrics(m *Metrics) Option {
	return func(s *DefaultBookingService) { s.Metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *DefaultBookingService) { s.Logger = l }
}

func NewBookingService(store availabilityRepo.AvailabilityRepository, gen *slots.Generator, opts ...Option) *DefaultBookingService {
	s := &DefaultBookingService{
		Store:     store,
		Generator: gen,
		Now:       time.Now,
		Location:  time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = utils.GetLogger()
	}
	if s.Generator == nil {
		s.Generator = slots.NewGenerator(store, slots.RemainderDrop)
	}
	return s
}
