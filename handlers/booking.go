package handlers

import (
	"net/http"

	"slotwise/middleware"
	"slotwise/models"
	"slotwise/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the scheduling engine over HTTP.
type BookingHandler struct {
	Engine booking.SchedulingEngine
}

func NewBookingHandler(engine booking.SchedulingEngine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// CreatePublicBookingHandler books on behalf of the authenticated caller,
// who is always the customer.
func (h *BookingHandler) CreatePublicBookingHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, booking.ErrUnauthorized)
		return
	}
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	input.CustomerID = principal.ID

	details, err := h.Engine.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

// CreateBookingHandler books from the internal calendar; the customer is explicit.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	details, err := h.Engine.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	details, err := h.Engine.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookingHandler) ListEmployeeBookingsHandler(c *gin.Context) {
	bookings, err := h.Engine.ListBookings(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}
	details, err := h.Engine.UpdateBooking(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	details, err := h.Engine.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// DayAvailabilityHandler returns the advisory occupancy of an employee's day.
func (h *BookingHandler) DayAvailabilityHandler(c *gin.Context) {
	day, err := h.Engine.DayAvailability(c.Request.Context(), c.Param("employeeID"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// SlotsHandler returns the configured grid of start times.
func (h *BookingHandler) SlotsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.Engine.Slots()})
}
