package schedulerRepo

import (
	"context"
	"sort"
	"sync"

	"slotwise/models"
)

// MemorySchedulerRepo is an in-process SchedulerRepository used for local
// runs and tests. All units of work are serialized by a single mutex.
type MemorySchedulerRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

// NewMemorySchedulerRepo constructs an empty in-memory store.
func NewMemorySchedulerRepo() *MemorySchedulerRepo {
	return &MemorySchedulerRepo{bookings: make(map[string]models.Booking)}
}

func (repo *MemorySchedulerRepo) Ping(ctx context.Context) error { return nil }

func (repo *MemorySchedulerRepo) EnsureIndexes(ctx context.Context) error { return nil }

// WithEmployeeDays stages fn's writes and applies them only if fn succeeds.
func (repo *MemorySchedulerRepo) WithEmployeeDays(
	ctx context.Context,
	employeeID string,
	dates []string,
	fn func(ctx context.Context, tx SlotTx) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	tx := &memorySlotTx{repo: repo, staged: make(map[string]models.Booking)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, b := range tx.staged {
		repo.bookings[id] = b
	}
	return nil
}

func (repo *MemorySchedulerRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	b, ok := repo.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (repo *MemorySchedulerRepo) ListForEmployeeOnDate(ctx context.Context, employeeID, date string) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return repo.filter(nil, func(b models.Booking) bool {
		return b.EmployeeID == employeeID && b.BookingDate == date
	}), nil
}

// filter returns matching bookings sorted by start; staged rows shadow stored ones.
func (repo *MemorySchedulerRepo) filter(staged map[string]models.Booking, keep func(models.Booking) bool) []models.Booking {
	out := []models.Booking{}
	for id, b := range repo.bookings {
		if s, ok := staged[id]; ok {
			b = s
		}
		if keep(b) {
			out = append(out, b)
		}
	}
	for id, b := range staged {
		if _, stored := repo.bookings[id]; !stored && keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

type memorySlotTx struct {
	repo   *MemorySchedulerRepo
	staged map[string]models.Booking
}

func (tx *memorySlotTx) ActiveBookings(ctx context.Context, employeeID string, dates ...string) ([]models.Booking, error) {
	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[d] = true
	}
	return tx.repo.filter(tx.staged, func(b models.Booking) bool {
		return b.EmployeeID == employeeID && wanted[b.BookingDate] && b.Active()
	}), nil
}

func (tx *memorySlotTx) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if b, ok := tx.staged[bookingID]; ok {
		return &b, nil
	}
	b, ok := tx.repo.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (tx *memorySlotTx) Insert(ctx context.Context, booking *models.Booking) error {
	tx.staged[booking.ID] = *booking
	return nil
}

func (tx *memorySlotTx) Replace(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error {
	current, err := tx.GetBooking(ctx, booking.ID)
	if err != nil {
		return err
	}
	if current.Status != expected {
		return ErrStale
	}
	tx.staged[booking.ID] = *booking
	return nil
}
