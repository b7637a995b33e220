package provider

import (
	"context"
	"time"

	"go.uber.org/zap"

	availabilityRepo "slotbook/database/repository/availability"
	"slotbook/models"
	"slotbook/services/slots"
	"slotbook/utils"
)

// ProviderService exposes provider directory and availability operations.
type ProviderService interface {
	ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.ProviderSummary, error)
	RegisterProvider(ctx context.Context, p models.Provider) (*models.Provider, error)
	GetAvailability(ctx context.Context, providerID string) (*models.ProviderAvailability, error)
	UpdateAvailability(ctx context.Context, session models.Session, cfg models.ProviderAvailability) (*models.ProviderAvailability, error)
	AvailableSlots(ctx context.Context, providerID, date string) ([]models.TimeSlot, error)
	MonthCalendar(ctx context.Context, providerID, month string) ([]models.CalendarDay, error)
}

type DefaultProviderService struct {
	Store     availabilityRepo.AvailabilityRepository
	Generator *slots.Generator
	Logger    *zap.Logger
	Now       func() time.Time
	Location  *time.Location
}

func NewProviderService(store availabilityRepo.AvailabilityRepository, gen *slots.Generator, now func() time.Time, loc *time.Location) *DefaultProviderService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if gen == nil {
		gen = slots.NewGenerator(store, slots.RemainderDrop)
	}
	return &DefaultProviderService{
		Store:     store,
		Generator: gen,
		Logger:    utils.GetLogger(),
		Now:       now,
		Location:  loc,
	}
}
