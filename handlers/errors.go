package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/utils"
)

// statusFor maps a BookingError code to its HTTP status.
func statusFor(code models.ErrorCode) int {
	switch code {
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	case models.ErrCodeInvalidDate, models.ErrCodeInvalidSlot, models.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case models.ErrCodeSlotTaken:
		return http.StatusConflict
	case models.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for err. Anything that is not a
// BookingError is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	code := models.CodeOf(err)
	if code == "" {
		getLogger(c).Error("Unexpected failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "An unexpected error occurred. Please try again later.")
		return
	}
	var be *models.BookingError
	errors.As(err, &be)
	utils.JSONError(c, statusFor(code), string(code), be.Message)
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, "badRequest", message)
}
