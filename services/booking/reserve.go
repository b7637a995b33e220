package booking

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/services/calendar"
)

// RequestBooking validates the request against the provider's availability and
// reserves the slot for the session's user. A lost race surfaces as a
// slotTaken error and is never retried here.
func (s *DefaultBookingService) RequestBooking(ctx context.Context, session models.Session, req models.BookingRequest) (booking *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "booking.RequestBooking")
	span.SetAttributes(
		attribute.String("slotbook.provider_id", req.ProviderID),
		attribute.String("slotbook.date", req.Date),
		attribute.Int("slotbook.slot_index", req.SlotIndex),
	)
	defer func() {
		s.Metrics.ObserveReservation(outcome(err, "confirmed"))
		finishSpan(span, err)
	}()

	if session.IsZero() {
		return nil, models.NewForbiddenError("a signed-in client is required to book")
	}
	if session.IsProvider() {
		return nil, models.NewForbiddenError("providers cannot book slots")
	}
	req.ClientID = session.UserID

	cfg, err := s.Store.GetConfig(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	today := calendar.Today(s.Now(), s.Location)
	if date.Before(today) {
		return nil, models.NewInvalidSlotError("date %s is in the past", date)
	}
	if !calendar.IsWorkingDay(*cfg, date) {
		return nil, models.NewInvalidSlotError("provider does not work on %s", date.Weekday())
	}

	daySlots := s.Generator.Boundaries(*cfg, date)
	if req.SlotIndex < 0 || req.SlotIndex >= len(daySlots) {
		return nil, models.NewInvalidSlotError("slot index %d is out of range, %s has %d slots", req.SlotIndex, date, len(daySlots))
	}
	slot := daySlots[req.SlotIndex]

	free, err := s.Store.IsSlotFree(ctx, req.ProviderID, slot.Date, slot.Index)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, models.NewSlotTakenError("slot %s on %s is already booked", slot.Label, slot.Date)
	}

	booking, err = s.Store.Reserve(ctx, models.Booking{
		ProviderID:      req.ProviderID,
		ClientID:        req.ClientID,
		Date:            slot.Date,
		SlotIndex:       slot.Index,
		Start:           slot.Start,
		End:             slot.End,
		Status:          models.BookingStatusConfirmed,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       s.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, models.ErrSlotTaken) {
			s.Logger.Info("Lost reservation race",
				zap.String("providerId", req.ProviderID),
				zap.String("date", slot.Date),
				zap.Int("slotIndex", slot.Index),
				zap.String("clientId", req.ClientID))
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("slotbook.booking_id", booking.ID))
	s.Logger.Info("Booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", booking.ProviderID),
		zap.String("date", booking.Date),
		zap.String("slot", slot.Label),
		zap.String("clientId", booking.ClientID))
	return booking, nil
}
