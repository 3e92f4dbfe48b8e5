// File: services/booking/bookingUpdates.go
package booking

import (
	"context"

	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clockLayout = "15:04"

// UpdateBooking applies a patch to an existing booking. A patch that moves the
// booking (employee, service, date or time) re-runs the overlap check with
// the booking itself excluded. Status and notes edits, and any cancellation,
// skip the check.
func (se *DefaultSchedulingEngine) UpdateBooking(ctx context.Context, bookingID string, patch models.BookingPatch) (*models.BookingDetails, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, NewInvalidInput("bookingId %q is not a valid UUID", bookingID)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, NewInvalidInput("unknown status %q", *patch.Status)
	}
	current, err := se.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, se.mapWriteError(err)
	}

	cancelling := patch.Status != nil && *patch.Status == models.BookingCancelled
	if cancelling || !patch.TouchesSchedule() {
		return se.editStatus(ctx, current, patch)
	}
	return se.reschedule(ctx, current, patch)
}

// CancelBooking moves a booking to cancelled, freeing its interval.
func (se *DefaultSchedulingEngine) CancelBooking(ctx context.Context, bookingID string) (*models.BookingDetails, error) {
	cancelled := models.BookingCancelled
	return se.UpdateBooking(ctx, bookingID, models.BookingPatch{Status: &cancelled})
}

func (se *DefaultSchedulingEngine) editStatus(ctx context.Context, current *models.Booking, patch models.BookingPatch) (*models.BookingDetails, error) {
	next := current.Status
	if patch.Status != nil {
		next = *patch.Status
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, NewInvalidInput("cannot move booking from %s to %s", current.Status, next)
	}
	if next == current.Status && patch.Notes == nil {
		return se.details(ctx, current), nil
	}

	updated := *current
	updated.Status = next
	if patch.Notes != nil {
		updated.Notes = patch.Notes
	}
	updated.UpdatedAt = se.Now().UTC()

	err := se.Repo.WithEmployeeDays(ctx, current.EmployeeID, lockDates(current.BookingDate, se.Location), func(ctx context.Context, tx schedulerRepo.SlotTx) error {
		if err := ensureUnchanged(ctx, tx, current); err != nil {
			return err
		}
		return tx.Replace(ctx, &updated, current.Status)
	})
	if err != nil {
		return nil, se.mapWriteError(err)
	}

	event := models.EventBookingUpdated
	if next == models.BookingCancelled && current.Status != models.BookingCancelled {
		event = models.EventBookingCancelled
	}
	se.Logger.Info("booking status updated",
		zap.String("bookingID", updated.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)))

	se.invalidate(ctx, &updated)
	details := se.details(ctx, &updated)
	se.notify(ctx, event, details)
	return details, nil
}

func (se *DefaultSchedulingEngine) reschedule(ctx context.Context, current *models.Booking, patch models.BookingPatch) (*models.BookingDetails, error) {
	if current.Status.Terminal() {
		return nil, NewInvalidInput("a %s booking cannot be rescheduled", current.Status)
	}
	next := current.Status
	if patch.Status != nil {
		next = *patch.Status
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, NewInvalidInput("cannot move booking from %s to %s", current.Status, next)
	}

	// Merge the patch over the stored booking.
	employeeID := stringOr(patch.EmployeeID, current.EmployeeID)
	serviceID := stringOr(patch.ServiceID, current.ServiceID)
	date := stringOr(patch.Date, current.BookingDate)
	startTime := stringOr(patch.StartTime, current.StartAt.In(se.Location).Format(clockLayout))

	req, err := se.parseSlotRequest(employeeID, date, startTime)
	if err != nil {
		return nil, err
	}
	resolved, err := se.ResolveDuration(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	serviceChanged := serviceID != current.ServiceID
	if serviceChanged && !resolved.Service.Active {
		return nil, NewInvalidInput("service %s is not offered", serviceID)
	}
	var emp *models.Employee
	if employeeID != current.EmployeeID {
		emp, err = se.resolveEmployee(ctx, employeeID)
	} else {
		emp, err = se.lookupEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, err
	}

	start, end, bookingDate := se.interval(req, resolved.Duration)
	updated := *current
	updated.EmployeeID = employeeID
	updated.ServiceID = serviceID
	updated.BookingDate = bookingDate
	updated.StartAt = start
	updated.EndAt = end
	updated.DurationSeconds = resolved.Service.DurationSeconds
	updated.Status = next
	if serviceChanged {
		updated.TotalPrice = resolved.Price
	}
	if patch.Notes != nil {
		updated.Notes = patch.Notes
	}
	updated.UpdatedAt = se.Now().UTC()

	err = se.Repo.WithEmployeeDays(ctx, updated.EmployeeID, lockDates(updated.BookingDate, se.Location), func(ctx context.Context, tx schedulerRepo.SlotTx) error {
		if err := ensureUnchanged(ctx, tx, current); err != nil {
			return err
		}
		if err := checkSlotFree(ctx, tx, &updated, se.Location); err != nil {
			return err
		}
		return tx.Replace(ctx, &updated, current.Status)
	})
	if err != nil {
		return nil, se.mapWriteError(err)
	}

	se.Logger.Info("booking rescheduled",
		zap.String("bookingID", updated.ID),
		zap.String("employeeID", updated.EmployeeID),
		zap.Time("start", updated.StartAt))

	se.invalidate(ctx, current)
	se.invalidate(ctx, &updated)
	details := &models.BookingDetails{Booking: updated, Service: &resolved.Service, Employee: emp}
	if updated.EmployeeID != current.EmployeeID {
		details.PreviousEmployeeID = current.EmployeeID
	}
	se.notify(ctx, models.EventBookingUpdated, details)
	return details, nil
}

// ensureUnchanged re-reads the booking inside the unit of work and fails with
// ErrStale if another writer committed a change since it was loaded.
func ensureUnchanged(ctx context.Context, tx schedulerRepo.SlotTx, loaded *models.Booking) error {
	fresh, err := tx.GetBooking(ctx, loaded.ID)
	if err != nil {
		return err
	}
	if !fresh.UpdatedAt.Equal(loaded.UpdatedAt) || fresh.Status != loaded.Status {
		return schedulerRepo.ErrStale
	}
	return nil
}

func stringOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

