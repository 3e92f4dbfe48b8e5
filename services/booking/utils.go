package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "slotwise/database/repository/catalog"
	"slotwise/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slotRequest is a validated (employee, date, start time) triple.
type slotRequest struct {
	employeeID string
	date       time.Time
	start      models.ClockTime
}

func (se *DefaultSchedulingEngine) parseSlotRequest(employeeID, date, startTime string) (*slotRequest, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, NewInvalidInput("employeeId %q is not a valid UUID", employeeID)
	}
	day, err := models.ParseDate(date, se.Location)
	if err != nil {
		return nil, NewInvalidInput("%s", err.Error())
	}
	start, err := models.ParseClock(startTime)
	if err != nil {
		return nil, NewInvalidInput("%s", err.Error())
	}
	return &slotRequest{employeeID: employeeID, date: day, start: start}, nil
}

// interval computes the booking's instants and derived calendar date.
func (se *DefaultSchedulingEngine) interval(req *slotRequest, duration time.Duration) (start, end time.Time, bookingDate string) {
	start = req.start.On(req.date, se.Location)
	end = start.Add(duration)
	return start, end, start.In(se.Location).Format(models.DateLayout)
}

func previousDate(day time.Time) string {
	return day.AddDate(0, 0, -1).Format(models.DateLayout)
}

func nextDate(day time.Time) string {
	return day.AddDate(0, 0, 1).Format(models.DateLayout)
}

// firstConflict returns the first active booking overlapping [start, end),
// skipping excludeID.
func firstConflict(bookings []models.Booking, start, end time.Time, excludeID string) *models.Booking {
	for i := range bookings {
		b := bookings[i]
		if b.ID == excludeID || !b.Active() {
			continue
		}
		if b.Overlaps(start, end) {
			return &b
		}
	}
	return nil
}

// lookupEmployee loads an employee without checking its active flag.
func (se *DefaultSchedulingEngine) lookupEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, NewInvalidInput("employeeId %q is not a valid UUID", employeeID)
	}
	emp, err := se.Catalog.GetEmployeeByID(ctx, employeeID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, NewNotFound("employee %s not found", employeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load employee %s: %w", employeeID, err)
	}
	return emp, nil
}

// details attaches the referenced service and employee for display. Lookups
// failing here do not fail the call; the booking itself is authoritative.
func (se *DefaultSchedulingEngine) details(ctx context.Context, b *models.Booking) *models.BookingDetails {
	out := &models.BookingDetails{Booking: *b}
	if svc, err := se.Catalog.GetServiceByID(ctx, b.ServiceID); err == nil {
		out.Service = svc
	} else {
		se.Logger.Warn("booking service lookup failed", zap.String("bookingID", b.ID), zap.Error(err))
	}
	if emp, err := se.Catalog.GetEmployeeByID(ctx, b.EmployeeID); err == nil {
		out.Employee = emp
	} else {
		se.Logger.Warn("booking employee lookup failed", zap.String("bookingID", b.ID), zap.Error(err))
	}
	return out
}

// invalidate drops cached availability for the days a booking can appear on.
func (se *DefaultSchedulingEngine) invalidate(ctx context.Context, b *models.Booking) {
	day, err := models.ParseDate(b.BookingDate, se.Location)
	if err != nil {
		return
	}
	if err := se.Cache.Invalidate(ctx, b.EmployeeID, b.BookingDate, nextDate(day)); err != nil {
		se.Logger.Warn("failed to invalidate availability cache",
			zap.String("employeeID", b.EmployeeID),
			zap.String("date", b.BookingDate),
			zap.Error(err))
	}
}
