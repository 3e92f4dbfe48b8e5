package booking

import (
	"context"
	"time"

	catalogRepo "slotwise/database/repository/catalog"
	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// SchedulingEngine turns booking requests into conflict-checked reservations
// and answers which slots of an employee's day are taken.
type SchedulingEngine interface {
	// ResolveDuration looks up the length and current price of a service.
	ResolveDuration(ctx context.Context, serviceID string) (*ResolvedService, error)
	// Slots returns the configured grid of candidate start times.
	Slots() []models.ClockTime
	// DayAvailability returns the advisory occupancy of an employee's day.
	DayAvailability(ctx context.Context, employeeID, date string) (*models.DayAvailability, error)
	// CreateBooking is the only path that writes a new booking.
	CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.BookingDetails, error)
	// UpdateBooking reschedules or edits an existing booking.
	UpdateBooking(ctx context.Context, bookingID string, patch models.BookingPatch) (*models.BookingDetails, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.BookingDetails, error)
	GetBooking(ctx context.Context, bookingID string) (*models.BookingDetails, error)
	ListBookings(ctx context.Context, employeeID, date string) ([]models.Booking, error)
}

// BookingObserver is told about every committed booking write. Observers run
// after commit; their errors are logged and never undo the write.
type BookingObserver interface {
	BookingCommitted(ctx context.Context, event string, details *models.BookingDetails) error
}

// DefaultSchedulingEngine is the production implementation of SchedulingEngine.
type DefaultSchedulingEngine struct {
	Repo      schedulerRepo.SchedulerRepository
	Catalog   catalogRepo.CatalogRepository
	Cache     AvailabilityCache
	Observers []BookingObserver
	Grid      models.SlotGrid
	Location  *time.Location
	Now       func() time.Time
	Logger    *zap.Logger
}

// NewDefaultSchedulingEngine wires an engine with a no-op cache and no observers.
func NewDefaultSchedulingEngine(
	repo schedulerRepo.SchedulerRepository,
	catalog catalogRepo.CatalogRepository,
	grid models.SlotGrid,
	loc *time.Location,
) *DefaultSchedulingEngine {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultSchedulingEngine{
		Repo:     repo,
		Catalog:  catalog,
		Cache:    noopCache{},
		Grid:     grid,
		Location: loc,
		Now:      time.Now,
		Logger:   utils.GetLogger(),
	}
}

// notify runs the observers for a committed write. Failures are logged only.
func (se *DefaultSchedulingEngine) notify(ctx context.Context, event string, details *models.BookingDetails) {
	for _, obs := range se.Observers {
		if err := obs.BookingCommitted(ctx, event, details); err != nil {
			se.Logger.Warn("booking observer failed",
				zap.String("event", event),
				zap.String("bookingID", details.ID),
				zap.Error(err))
		}
	}
}
