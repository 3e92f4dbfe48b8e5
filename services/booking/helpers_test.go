package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	catalogRepo "slotwise/database/repository/catalog"
	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	engine   *DefaultSchedulingEngine
	repo     *schedulerRepo.MemorySchedulerRepo
	catalog  *catalogRepo.MemoryCatalogRepo
	observer *recordingObserver
	haircut  models.Service // 90 minutes
	shave    models.Service // 30 minutes
	alice    models.Employee
	bob      models.Employee
	customer string
}

type recordingObserver struct {
	mu      sync.Mutex
	events  []string
	details []models.BookingDetails
}

func (o *recordingObserver) BookingCommitted(_ context.Context, event string, details *models.BookingDetails) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	o.details = append(o.details, *details)
	return nil
}

// Last returns the details of the most recent committed write.
func (o *recordingObserver) Last() models.BookingDetails {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.details[len(o.details)-1]
}

func (o *recordingObserver) Events() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.events...)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		repo:     schedulerRepo.NewMemorySchedulerRepo(),
		catalog:  catalogRepo.NewMemoryCatalogRepo(),
		observer: &recordingObserver{},
		customer: uuid.NewString(),
	}
	f.haircut = models.Service{ID: uuid.NewString(), Name: "Haircut", Price: decimal.RequireFromString("45.50"), DurationSeconds: 90 * 60, Active: true}
	f.shave = models.Service{ID: uuid.NewString(), Name: "Shave", Price: decimal.RequireFromString("20.00"), DurationSeconds: 30 * 60, Active: true}
	f.alice = models.Employee{ID: uuid.NewString(), DisplayName: "Alice", Active: true}
	f.bob = models.Employee{ID: uuid.NewString(), DisplayName: "Bob", Active: true}
	for _, s := range []models.Service{f.haircut, f.shave} {
		s := s
		require.NoError(t, f.catalog.CreateService(ctx, &s))
	}
	for _, e := range []models.Employee{f.alice, f.bob} {
		e := e
		require.NoError(t, f.catalog.CreateEmployee(ctx, &e))
	}

	grid := models.SlotGrid{Open: models.MustParseClock("08:00"), Close: models.MustParseClock("20:00"), StepMinutes: 30}
	f.engine = NewDefaultSchedulingEngine(f.repo, f.catalog, grid, time.UTC)
	f.engine.Logger = zap.NewNop()
	f.engine.Observers = []BookingObserver{f.observer}
	return f
}

func (f *fixture) input(employee models.Employee, service models.Service, date, start string) models.CreateBookingInput {
	return models.CreateBookingInput{
		EmployeeID: employee.ID,
		ServiceID:  service.ID,
		CustomerID: f.customer,
		Date:       date,
		StartTime:  start,
	}
}

func (f *fixture) mustCreate(t *testing.T, employee models.Employee, service models.Service, date, start string) *models.BookingDetails {
	t.Helper()
	b, err := f.engine.CreateBooking(context.Background(), f.input(employee, service, date, start))
	require.NoError(t, err, "create %s %s", date, start)
	return b
}

func ptr[T any](v T) *T { return &v }
