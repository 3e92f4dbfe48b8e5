// File: slotwise/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	JWTSecret []byte

	// Public booking endpoints
	CreatePublicBookingHandler gin.HandlerFunc
	DayAvailabilityHandler     gin.HandlerFunc
	SlotsHandler               gin.HandlerFunc

	// Calendar endpoints
	GetBookingHandler           gin.HandlerFunc
	ListEmployeeBookingsHandler gin.HandlerFunc
	CreateBookingHandler        gin.HandlerFunc
	UpdateBookingHandler        gin.HandlerFunc
	CancelBookingHandler        gin.HandlerFunc

	// Catalog endpoints
	ListServicesHandler   gin.HandlerFunc
	GetServiceHandler     gin.HandlerFunc
	CreateServiceHandler  gin.HandlerFunc
	UpdateServiceHandler  gin.HandlerFunc
	ListEmployeesHandler  gin.HandlerFunc
	GetEmployeeHandler    gin.HandlerFunc
	CreateEmployeeHandler gin.HandlerFunc
	UpdateEmployeeHandler gin.HandlerFunc
}

// NewHandlerBundle wires the booking and catalog handlers into a bundle.
func NewHandlerBundle(secret []byte, bh *BookingHandler, ch *CatalogHandler) *HandlerBundle {
	return &HandlerBundle{
		JWTSecret: secret,

		CreatePublicBookingHandler: bh.CreatePublicBookingHandler,
		DayAvailabilityHandler:     bh.DayAvailabilityHandler,
		SlotsHandler:               bh.SlotsHandler,

		GetBookingHandler:           bh.GetBookingHandler,
		ListEmployeeBookingsHandler: bh.ListEmployeeBookingsHandler,
		CreateBookingHandler:        bh.CreateBookingHandler,
		UpdateBookingHandler:        bh.UpdateBookingHandler,
		CancelBookingHandler:        bh.CancelBookingHandler,

		ListServicesHandler:   ch.ListServicesHandler,
		GetServiceHandler:     ch.GetServiceHandler,
		CreateServiceHandler:  ch.CreateServiceHandler,
		UpdateServiceHandler:  ch.UpdateServiceHandler,
		ListEmployeesHandler:  ch.ListEmployeesHandler,
		GetEmployeeHandler:    ch.GetEmployeeHandler,
		CreateEmployeeHandler: ch.CreateEmployeeHandler,
		UpdateEmployeeHandler: ch.UpdateEmployeeHandler,
	}
}
