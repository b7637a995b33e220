package provider

import (
	"context"

	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/services/calendar"
)

func (s *DefaultProviderService) ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.ProviderSummary, error) {
	providers, err := s.Store.ListProviders(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProviderSummary, len(providers))
	for i, p := range providers {
		out[i] = p.Summary()
	}
	return out, nil
}

// RegisterProvider creates or replaces a directory entry. A provider without
// availability starts from DefaultAvailability.
func (s *DefaultProviderService) RegisterProvider(ctx context.Context, p models.Provider) (*models.Provider, error) {
	if p.ID == "" {
		return nil, models.NewInvalidConfigError("provider id is required")
	}
	if p.Availability.SlotCount == 0 && p.Availability.WorkHours == (models.WorkHours{}) {
		p.Availability = models.DefaultAvailability(p.ID)
	}
	p.Availability.ProviderID = p.ID
	if err := p.Availability.Validate(); err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	p.UpdatedAt = now
	p.Availability.UpdatedAt = now
	if err := s.Store.UpsertProvider(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DefaultProviderService) GetAvailability(ctx context.Context, providerID string) (*models.ProviderAvailability, error) {
	return s.Store.GetConfig(ctx, providerID)
}

// UpdateAvailability lets a provider replace their own configuration. Existing
// bookings keep the slot boundaries they were made with.
func (s *DefaultProviderService) UpdateAvailability(ctx context.Context, session models.Session, cfg models.ProviderAvailability) (*models.ProviderAvailability, error) {
	if !session.IsProvider() || session.UserID != cfg.ProviderID {
		return nil, models.NewForbiddenError("only the provider may change their availability")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.UpdatedAt = s.Now().UTC()

	if err := s.Store.UpdateConfig(ctx, cfg); err != nil {
		return nil, err
	}
	s.Logger.Info("Availability updated",
		zap.String("providerId", cfg.ProviderID),
		zap.Int("start", cfg.WorkHours.Start),
		zap.Int("end", cfg.WorkHours.End),
		zap.Int("slotCount", cfg.SlotCount))
	return &cfg, nil
}

// AvailableSlots lists the slots of one date. Slots on dates before today are
// returned but never available.
func (s *DefaultProviderService) AvailableSlots(ctx context.Context, providerID, date string) ([]models.TimeSlot, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Store.GetConfig(ctx, providerID)
	if err != nil {
		return nil, err
	}

	out, err := s.Generator.GenerateSlots(ctx, *cfg, day)
	if err != nil {
		return nil, err
	}
	if day.Before(calendar.Today(s.Now(), s.Location)) {
		for i := range out {
			out[i].Available = false
		}
	}
	return out, nil
}

// MonthCalendar returns the 42-day grid for month ("YYYY-MM") annotated for this provider.
func (s *DefaultProviderService) MonthCalendar(ctx context.Context, providerID, month string) ([]models.CalendarDay, error) {
	ym, err := calendar.ParseYearMonth(month)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Store.GetConfig(ctx, providerID)
	if err != nil {
		return nil, err
	}
	grid, err := calendar.MonthGrid(ym)
	if err != nil {
		return nil, err
	}

	today := calendar.Today(s.Now(), s.Location)
	out := make([]models.CalendarDay, len(grid))
	for i, d := range grid {
		out[i] = models.CalendarDay{
			Date:       d.String(),
			InMonth:    ym.Contains(d),
			WorkingDay: calendar.IsWorkingDay(*cfg, d),
			Past:       d.Before(today),
		}
	}
	return out, nil
}
