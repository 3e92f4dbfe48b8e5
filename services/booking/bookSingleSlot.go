package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request, resolves duration and price, and
// inserts a pending booking unless the employee already has an active booking
// overlapping the requested interval.
func (se *DefaultSchedulingEngine) CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.BookingDetails, error) {
	// Step 1: Validate input shape
	if _, err := uuid.Parse(input.CustomerID); err != nil {
		return nil, NewInvalidInput("customerId %q is not a valid UUID", input.CustomerID)
	}
	req, err := se.parseSlotRequest(input.EmployeeID, input.Date, input.StartTime)
	if err != nil {
		return nil, err
	}

	// Step 2: Resolve service and employee
	resolved, err := se.ResolveDuration(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !resolved.Service.Active {
		return nil, NewInvalidInput("service %s is not offered", input.ServiceID)
	}
	emp, err := se.resolveEmployee(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	// Step 3: Compute the interval
	start, end, bookingDate := se.interval(req, resolved.Duration)
	now := se.Now().UTC()
	booking := &models.Booking{
		ID:              uuid.NewString(),
		EmployeeID:      input.EmployeeID,
		ServiceID:       input.ServiceID,
		CustomerID:      input.CustomerID,
		BookingDate:     bookingDate,
		StartAt:         start,
		EndAt:           end,
		Status:          models.BookingPending,
		DurationSeconds: resolved.Service.DurationSeconds,
		TotalPrice:      resolved.Price,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Step 4: Check and insert under the employee's day lock
	err = se.Repo.WithEmployeeDays(ctx, booking.EmployeeID, lockDates(bookingDate, se.Location), func(ctx context.Context, tx schedulerRepo.SlotTx) error {
		if err := checkSlotFree(ctx, tx, booking, se.Location); err != nil {
			return err
		}
		return tx.Insert(ctx, booking)
	})
	if err != nil {
		return nil, se.mapWriteError(err)
	}

	se.Logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("employeeID", booking.EmployeeID),
		zap.Time("start", booking.StartAt))

	// Step 5: Post-commit side effects
	se.invalidate(ctx, booking)
	details := &models.BookingDetails{Booking: *booking, Service: &resolved.Service, Employee: emp}
	se.notify(ctx, models.EventBookingCreated, details)
	return details, nil
}

// lockDates returns the dates a write starting on bookingDate must serialize
// on: its own and the previous one. Any two overlapping bookings no longer
// than a day share at least one of these.
func lockDates(bookingDate string, loc *time.Location) []string {
	day, err := models.ParseDate(bookingDate, loc)
	if err != nil {
		return []string{bookingDate}
	}
	return []string{previousDate(day), bookingDate}
}

// checkSlotFree loads the active bookings that could intersect b and fails
// with Conflict if one does. b itself is excluded so a reschedule can keep
// overlapping its own previous interval.
func checkSlotFree(ctx context.Context, tx schedulerRepo.SlotTx, b *models.Booking, loc *time.Location) error {
	day, err := models.ParseDate(b.BookingDate, loc)
	if err != nil {
		return NewInvalidInput("%s", err.Error())
	}
	existing, err := tx.ActiveBookings(ctx, b.EmployeeID, previousDate(day), b.BookingDate, nextDate(day))
	if err != nil {
		return err
	}
	if firstConflict(existing, b.StartAt, b.EndAt, b.ID) != nil {
		return NewConflict(slotTakenMessage)
	}
	return nil
}

// mapWriteError converts repository failures into the booking taxonomy.
func (se *DefaultSchedulingEngine) mapWriteError(err error) error {
	var bookingErr *BookingError
	switch {
	case errors.As(err, &bookingErr):
		return bookingErr
	case errors.Is(err, schedulerRepo.ErrOverlap):
		return NewConflict(slotTakenMessage)
	case errors.Is(err, schedulerRepo.ErrStale):
		return NewConflict("booking was modified concurrently, retry")
	case errors.Is(err, schedulerRepo.ErrNotFound):
		return NewNotFound("booking not found")
	}
	return fmt.Errorf("booking write failed: %w", err)
}
