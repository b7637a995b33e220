package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/middleware"
	"slotbook/models"
)

// createBookingInput keeps slotIndex a pointer so a missing index is rejected
// instead of binding to slot 0.
type createBookingInput struct {
	ProviderID      string `json:"providerId" binding:"required"`
	Date            string `json:"date" binding:"required"`
	SlotIndex       *int   `json:"slotIndex" binding:"required"`
	SpecialRequests string `json:"specialRequests"`
}

// CreateBookingHandler handles POST /api/bookings. The client is always the session's user.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid booking request: "+err.Error())
		return
	}

	req := models.BookingRequest{
		ProviderID:      input.ProviderID,
		Date:            input.Date,
		SlotIndex:       *input.SlotIndex,
		SpecialRequests: input.SpecialRequests,
	}
	b, err := hb.BookingService.RequestBooking(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Debug("Booking created", zap.String("bookingId", b.ID))
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler handles GET /api/bookings?date=&status=.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	filter := models.BookingFilter{
		ProviderID: c.Query("providerId"),
		ClientID:   c.Query("clientId"),
		Date:       c.Query("date"),
		Status:     models.BookingStatus(c.Query("status")),
	}
	switch filter.Status {
	case "", models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
	default:
		badRequest(c, "status must be PENDING, CONFIRMED or CANCELLED")
		return
	}

	bookings, err := hb.BookingService.ListBookings(c.Request.Context(), middleware.GetSession(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookingHandler handles GET /api/bookings/:id.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	b, err := hb.BookingService.GetBooking(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	b, err := hb.BookingService.CancelBooking(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
