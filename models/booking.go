package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Active reports whether a booking in this status still holds its slot.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking is a client's hold on one slot of one provider on one date.
type Booking struct {
	ID              string        `bson:"id" json:"id"`                                               // UUID
	ProviderID      string        `bson:"providerId" json:"providerId"`                               // provider who was booked
	ClientID        string        `bson:"clientId" json:"clientId"`                                   // client who made the booking
	Date            string        `bson:"date" json:"date"`                                           // "YYYY-MM-DD", no time zone
	SlotIndex       int           `bson:"slotIndex" json:"slotIndex"`                                 // index into the day's slots
	Start           int           `bson:"start" json:"start"`                                         // slot start at booking time, minutes from midnight
	End             int           `bson:"end" json:"end"`                                             // slot end at booking time, minutes from midnight
	Status          BookingStatus `bson:"status" json:"status"`                                       // PENDING, CONFIRMED or CANCELLED
	SpecialRequests string        `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"` // free text from the client
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	CancelledAt     *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy     string        `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
}

// SlotKey identifies the (provider, date, slot) triple the uniqueness invariant is defined on.
type SlotKey struct {
	ProviderID string
	Date       string
	SlotIndex  int
}

func (b Booking) Key() SlotKey {
	return SlotKey{ProviderID: b.ProviderID, Date: b.Date, SlotIndex: b.SlotIndex}
}

// BookingRequest is the input to a reservation.
type BookingRequest struct {
	ProviderID      string `json:"providerId" binding:"required"`
	Date            string `json:"date" binding:"required"`
	SlotIndex       int    `json:"slotIndex"`
	ClientID        string `json:"-"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// BookingFilter narrows ListBookings. Empty fields match everything.
type BookingFilter struct {
	ProviderID string
	ClientID   string
	Date       string
	Status     BookingStatus
}

// Matches reports whether b satisfies every non-empty field of the filter.
func (f BookingFilter) Matches(b Booking) bool {
	if f.ProviderID != "" && b.ProviderID != f.ProviderID {
		return false
	}
	if f.ClientID != "" && b.ClientID != f.ClientID {
		return false
	}
	if f.Date != "" && b.Date != f.Date {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}
