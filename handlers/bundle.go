// File: handlers/bundle.go
package handlers

import (
	"slotbook/services/booking"
	"slotbook/services/provider"
)

// HandlerBundle groups the services every endpoint handler needs.
type HandlerBundle struct {
	BookingService  booking.BookingService
	ProviderService provider.ProviderService
}

func NewHandlerBundle(bookingSvc booking.BookingService, providerSvc provider.ProviderService) *HandlerBundle {
	return &HandlerBundle{BookingService: bookingSvc, ProviderService: providerSvc}
}
