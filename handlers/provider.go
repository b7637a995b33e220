package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"slotbook/middleware"
	"slotbook/models"
	"slotbook/services/calendar"
	"slotbook/services/slots"
)

// availabilityResponse adds the derived slot length to a provider's configuration.
type availabilityResponse struct {
	models.ProviderAvailability
	SlotMinutes int    `json:"slotMinutes"`
	Description string `json:"description"`
}

func newAvailabilityResponse(cfg models.ProviderAvailability) availabilityResponse {
	minutes := slots.SlotDuration(cfg)
	return availabilityResponse{
		ProviderAvailability: cfg,
		SlotMinutes:          minutes,
		Description:          calendar.DescribeDuration(minutes),
	}
}

// ListProvidersHandler handles GET /api/providers?category=&active=.
func (hb *HandlerBundle) ListProvidersHandler(c *gin.Context) {
	filter := models.ProviderFilter{Category: c.Query("category")}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "active must be true or false")
			return
		}
		filter.ActiveOnly = active
	}

	providers, err := hb.ProviderService.ListProviders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetAvailabilityHandler handles GET /api/providers/:id/availability.
func (hb *HandlerBundle) GetAvailabilityHandler(c *gin.Context) {
	cfg, err := hb.ProviderService.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAvailabilityResponse(*cfg))
}

// UpdateAvailabilityHandler handles PUT /api/providers/:id/availability.
func (hb *HandlerBundle) UpdateAvailabilityHandler(c *gin.Context) {
	var input models.ProviderAvailability
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid availability payload: "+err.Error())
		return
	}
	input.ProviderID = c.Param("id")

	cfg, err := hb.ProviderService.UpdateAvailability(c.Request.Context(), middleware.GetSession(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAvailabilityResponse(*cfg))
}

// GetSlotsHandler handles GET /api/providers/:id/slots?date=YYYY-MM-DD.
func (hb *HandlerBundle) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequest(c, "date query parameter is required")
		return
	}

	daySlots, err := hb.ProviderService.AvailableSlots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": c.Param("id"), "date": date, "slots": daySlots})
}

// GetCalendarHandler handles GET /api/providers/:id/calendar?month=YYYY-MM.
func (hb *HandlerBundle) GetCalendarHandler(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		badRequest(c, "month query parameter is required")
		return
	}

	days, err := hb.ProviderService.MonthCalendar(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": c.Param("id"), "month": month, "days": days})
}
