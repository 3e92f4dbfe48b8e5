package booking

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

// OverlappingBookings returns the non-cancelled bookings of employeeID whose
// half-open interval contains t.
func OverlappingBookings(employeeID string, t time.Time, bookings []models.Booking) []models.Booking {
	var out []models.Booking
	for _, b := range bookings {
		if b.EmployeeID != employeeID || !b.Active() {
			continue
		}
		if b.Covers(t) {
			out = append(out, b)
		}
	}
	return out
}

// IsOccupied reports whether candidate on date (interpreted in date's
// location) falls inside some active booking of employeeID. A booking's end
// is exclusive, so the bucket at its end is free.
func IsOccupied(employeeID string, date time.Time, candidate models.ClockTime, bookings []models.Booking) bool {
	return len(OverlappingBookings(employeeID, candidate.On(date, date.Location()), bookings)) > 0
}

// BuildDayAvailability projects bookings onto the grid. Every covered bucket
// is occupied; the booking id is attached only to the first bucket each
// booking covers so a calendar renders one block per booking.
func BuildDayAvailability(employeeID string, date time.Time, grid []models.ClockTime, stepMinutes int, bookings []models.Booking) *models.DayAvailability {
	loc := date.Location()
	day := &models.DayAvailability{
		EmployeeID: employeeID,
		Date:       date.Format(models.DateLayout),
		StepMinute: stepMinutes,
		Slots:      make([]models.SlotAvailability, 0, len(grid)),
	}
	labelled := make(map[string]bool)
	for _, t := range grid {
		covering := OverlappingBookings(employeeID, t.On(date, loc), bookings)
		slot := models.SlotAvailability{
			Time:          t,
			Occupied:      len(covering) > 0,
			OverlapsCount: len(covering),
		}
		for _, b := range covering {
			if !labelled[b.ID] {
				labelled[b.ID] = true
				slot.BookingID = b.ID
				break
			}
		}
		day.Slots = append(day.Slots, slot)
	}
	return day
}

// DayAvailability returns the advisory availability of an employee on date.
// Bookings of the previous day are included so one running past midnight
// still occupies the early buckets.
func (se *DefaultSchedulingEngine) DayAvailability(ctx context.Context, employeeID, date string) (*models.DayAvailability, error) {
	day, err := models.ParseDate(date, se.Location)
	if err != nil {
		return nil, NewInvalidInput("%s", err.Error())
	}
	if _, err := se.lookupEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if cached, ok := se.Cache.Get(ctx, employeeID, date); ok {
		return cached, nil
	}

	var bookings []models.Booking
	for _, d := range []string{previousDate(day), date} {
		list, err := se.Repo.ListForEmployeeOnDate(ctx, employeeID, d)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings for %s: %w", d, err)
		}
		bookings = append(bookings, list...)
	}

	result := BuildDayAvailability(employeeID, day, se.Slots(), se.Grid.StepMinutes, bookings)
	if err := se.Cache.Set(ctx, result); err != nil {
		se.Logger.Warn("failed to cache availability",
			zap.String("employeeID", employeeID),
			zap.String("date", date),
			zap.Error(err))
	}
	return result, nil
}
