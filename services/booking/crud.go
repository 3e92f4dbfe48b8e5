package booking

import (
	"context"
	"fmt"

	"slotwise/models"

	"github.com/google/uuid"
)

// GetBooking returns a booking with its service and employee attached.
func (se *DefaultSchedulingEngine) GetBooking(ctx context.Context, bookingID string) (*models.BookingDetails, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, NewInvalidInput("bookingId %q is not a valid UUID", bookingID)
	}
	b, err := se.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, se.mapWriteError(err)
	}
	return se.details(ctx, b), nil
}

// ListBookings returns every booking of an employee on a date, cancelled included.
func (se *DefaultSchedulingEngine) ListBookings(ctx context.Context, employeeID, date string) ([]models.Booking, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, NewInvalidInput("employeeId %q is not a valid UUID", employeeID)
	}
	if _, err := models.ParseDate(date, se.Location); err != nil {
		return nil, NewInvalidInput("%s", err.Error())
	}
	bookings, err := se.Repo.ListForEmployeeOnDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
