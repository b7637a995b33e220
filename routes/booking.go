package routes

import (
	"github.com/gin-gonic/gin"

	"slotbook/handlers"
	"slotbook/middleware"
)

// RegisterBookingRoutes sets up the reservation endpoints. All of them need a session.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.SessionMiddleware(false))
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("", hb.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
	}
}
