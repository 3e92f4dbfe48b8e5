package schedulerRepo

import (
	"context"
	"errors"
	"sort"

	"slotwise/models"
)

var (
	// ErrNotFound is returned when a booking id does not exist.
	ErrNotFound = errors.New("booking not found")
	// ErrOverlap is returned when the store itself rejects an overlapping interval.
	ErrOverlap = errors.New("booking overlaps an existing reservation")
	// ErrStale is returned when a conditional write finds the row changed underneath it.
	ErrStale = errors.New("booking was modified concurrently")
)

// SlotTx is the view of the store inside a serialized booking write.
type SlotTx interface {
	// ActiveBookings returns the non-cancelled bookings of employeeID on any of dates.
	ActiveBookings(ctx context.Context, employeeID string, dates ...string) ([]models.Booking, error)
	// GetBooking reads a booking inside the unit of work.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// Insert persists a new booking.
	Insert(ctx context.Context, booking *models.Booking) error
	// Replace overwrites a booking, provided its stored status still equals expected.
	Replace(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error
}

// SchedulerRepository is the persistence collaborator of the scheduling engine.
type SchedulerRepository interface {
	// WithEmployeeDays runs fn atomically with respect to every other
	// WithEmployeeDays call sharing the employee and at least one date: no
	// competing writer can commit between fn's reads and its writes. fn may be
	// re-run on transient storage conflicts, so it must not have side effects
	// outside tx.
	WithEmployeeDays(ctx context.Context, employeeID string, dates []string, fn func(ctx context.Context, tx SlotTx) error) error
	// GetBookingByID retrieves a booking by its ID.
	GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListForEmployeeOnDate returns every booking (cancelled included) of an employee on a date, ordered by start.
	ListForEmployeeOnDate(ctx context.Context, employeeID, date string) ([]models.Booking, error)
	// EnsureIndexes prepares collections/tables and storage-level constraints.
	EnsureIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

// GuardKey names the serialization unit for an employee's day.
func GuardKey(employeeID, date string) string {
	return employeeID + "|" + date
}

// guardKeys returns the sorted, de-duplicated keys for dates. Acquiring
// locks in this order keeps two writers from deadlocking.
func guardKeys(employeeID string, dates []string) []string {
	seen := make(map[string]bool, len(dates))
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		k := GuardKey(employeeID, d)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
