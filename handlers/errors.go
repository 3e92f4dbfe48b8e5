package handlers

import (
	"errors"
	"net/http"

	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a booking error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case booking.CodeInvalidInput:
		return http.StatusBadRequest
	case booking.CodeUnauthorized:
		return http.StatusUnauthorized
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as the standard error body. Anything that is not a
// BookingError is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var be *booking.BookingError
	if errors.As(err, &be) {
		utils.JSONError(c, statusFor(be.Code), be.Code, be.Message)
		return
	}
	utils.GetLogger().Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal", "An unexpected error occurred. Please try again later.")
}

func respondBindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, "Invalid request payload: "+err.Error())
}
