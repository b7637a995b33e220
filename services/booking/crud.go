package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/services/calendar"
)

// canAccess reports whether the session belongs to the booking's client or provider.
func canAccess(session models.Session, b *models.Booking) bool {
	if session.IsZero() {
		return false
	}
	return session.UserID == b.ClientID || session.UserID == b.ProviderID
}

// CancelBooking cancels a booking for its client or its provider. Cancelling a
// booking that is already cancelled succeeds without changing it.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, session models.Session, bookingID string) (booking *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "booking.CancelBooking")
	span.SetAttributes(attribute.String("slotbook.booking_id", bookingID))
	result := "cancelled"
	defer func() {
		s.Metrics.ObserveCancellation(outcome(err, result))
		finishSpan(span, err)
	}()

	existing, err := s.Store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canAccess(session, existing) {
		return nil, models.NewForbiddenError("only the booking's client or provider may cancel it")
	}
	if existing.Status == models.BookingStatusCancelled {
		result = "noop"
		return existing, nil
	}

	booking, err = s.Store.Cancel(ctx, bookingID, session.UserID, s.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", booking.ProviderID),
		zap.String("date", booking.Date),
		zap.Int("slotIndex", booking.SlotIndex),
		zap.String("cancelledBy", booking.CancelledBy))
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, session models.Session, bookingID string) (*models.Booking, error) {
	b, err := s.Store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canAccess(session, b) {
		return nil, models.NewForbiddenError("booking %s belongs to someone else", bookingID)
	}
	return b, nil
}

// ListBookings scopes the filter to the session: providers see bookings made
// with them, clients see their own.
func (s *DefaultBookingService) ListBookings(ctx context.Context, session models.Session, filter models.BookingFilter) ([]models.Booking, error) {
	if session.IsZero() {
		return nil, models.NewForbiddenError("sign in to list bookings")
	}
	if session.IsProvider() {
		filter.ProviderID = session.UserID
	} else {
		filter.ClientID = session.UserID
	}
	if filter.Date != "" {
		if _, err := calendar.ParseDate(filter.Date); err != nil {
			return nil, err
		}
	}
	return s.Store.ListBookings(ctx, filter)
}
