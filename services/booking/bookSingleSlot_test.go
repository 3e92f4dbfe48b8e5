package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"slotwise/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingComputesInterval(t *testing.T) {
	f := newFixture(t)
	notes := "first visit"
	in := f.input(f.alice, f.haircut, "2025-03-10", "10:00")
	in.Notes = &notes

	b, err := f.engine.CreateBooking(context.Background(), in)
	require.NoError(t, err)

	wantStart := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	assert.True(t, b.StartAt.Equal(wantStart), "start %s", b.StartAt)
	assert.True(t, b.EndAt.Equal(wantStart.Add(90*time.Minute)), "end %s", b.EndAt)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "2025-03-10", b.BookingDate)
	assert.True(t, b.TotalPrice.Equal(decimal.RequireFromString("45.50")), "price %s", b.TotalPrice)
	require.NotNil(t, b.Service)
	require.NotNil(t, b.Employee)
	assert.Equal(t, "Alice", b.Employee.DisplayName)
	require.NotNil(t, b.Notes)
	assert.Equal(t, notes, *b.Notes)
	assert.Equal(t, []string{models.EventBookingCreated}, f.observer.Events())
}

func TestCreateBookingDerivesDateInBusinessLocation(t *testing.T) {
	f := newFixture(t)
	f.engine.Location = time.FixedZone("UTC-5", -5*60*60)

	b := f.mustCreate(t, f.alice, f.shave, "2025-03-10", "21:00")
	assert.Equal(t, "2025-03-10", b.BookingDate)
	assert.True(t, b.StartAt.UTC().Equal(time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)), "start %s", b.StartAt.UTC())
}

func TestCreateBookingBoundaryIsNotAConflict(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")
	f.mustCreate(t, f.alice, f.shave, "2025-03-10", "11:30")
	f.mustCreate(t, f.alice, f.shave, "2025-03-10", "09:30")
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	for _, start := range []string{"10:00", "11:00", "09:45", "11:15"} {
		_, err := f.engine.CreateBooking(ctx, f.input(f.alice, f.shave, "2025-03-10", start))
		require.ErrorIs(t, err, ErrConflict, "start %s", start)

		var be *BookingError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, "this time slot is already booked", be.Message)
	}

	// Another employee is unaffected.
	f.mustCreate(t, f.bob, f.haircut, "2025-03-10", "10:00")
}

func TestCreateBookingAcrossMidnight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mustCreate(t, f.alice, f.haircut, "2025-03-09", "23:30")

	_, err := f.engine.CreateBooking(ctx, f.input(f.alice, f.shave, "2025-03-10", "00:30"))
	assert.ErrorIs(t, err, ErrConflict, "previous day's overrun still occupies 00:30")
	f.mustCreate(t, f.alice, f.shave, "2025-03-10", "01:00")

	// And the other direction: a late booking running into an existing early one.
	f.mustCreate(t, f.bob, f.shave, "2025-03-11", "00:00")
	_, err = f.engine.CreateBooking(ctx, f.input(f.bob, f.haircut, "2025-03-10", "23:00"))
	assert.ErrorIs(t, err, ErrConflict, "runs into the next day's booking")
}

func TestCreateBookingFreezesPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	svc := f.haircut
	svc.Price = decimal.RequireFromString("99.00")
	require.NoError(t, f.catalog.UpdateService(ctx, &svc))

	got, err := f.engine.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("45.50")), "frozen price, got %s", got.TotalPrice)
}

func TestCancellationFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	_, err := f.engine.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	all, err := f.engine.ListBookings(ctx, f.alice.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, all, 2, "the cancelled booking is retained")
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := models.Employee{ID: uuid.NewString(), DisplayName: "Away", Active: false}
	require.NoError(t, f.catalog.CreateEmployee(ctx, &inactive))
	retired := models.Service{ID: uuid.NewString(), Name: "Old", Price: decimal.NewFromInt(1), DurationSeconds: 600, Active: false}
	require.NoError(t, f.catalog.CreateService(ctx, &retired))

	tests := []struct {
		name   string
		mutate func(*models.CreateBookingInput)
		want   error
	}{
		{"bad employee id", func(in *models.CreateBookingInput) { in.EmployeeID = "alice" }, ErrInvalidInput},
		{"bad service id", func(in *models.CreateBookingInput) { in.ServiceID = "cut" }, ErrInvalidInput},
		{"bad customer id", func(in *models.CreateBookingInput) { in.CustomerID = "" }, ErrInvalidInput},
		{"bad date", func(in *models.CreateBookingInput) { in.Date = "2025-13-01" }, ErrInvalidInput},
		{"bad time", func(in *models.CreateBookingInput) { in.StartTime = "25:00" }, ErrInvalidInput},
		{"single digit hour", func(in *models.CreateBookingInput) { in.StartTime = "9:30" }, ErrInvalidInput},
		{"unknown service", func(in *models.CreateBookingInput) { in.ServiceID = uuid.NewString() }, ErrNotFound},
		{"unknown employee", func(in *models.CreateBookingInput) { in.EmployeeID = uuid.NewString() }, ErrNotFound},
		{"inactive employee", func(in *models.CreateBookingInput) { in.EmployeeID = inactive.ID }, ErrInvalidInput},
		{"inactive service", func(in *models.CreateBookingInput) { in.ServiceID = retired.ID }, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(f.alice, f.haircut, "2025-03-10", "10:00")
			tt.mutate(&in)
			_, err := f.engine.CreateBooking(ctx, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.observer.Events(), "rejected requests must not notify")
}

func TestConcurrentCreatesForSameSlot(t *testing.T) {
	f := newFixture(t)
	const workers = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, conflicts := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.CreateBooking(context.Background(), f.input(f.alice, f.haircut, "2025-03-10", "10:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes, "exactly one writer wins")
	assert.Equal(t, workers-1, conflicts)
}

// intervalModel mirrors the bookings the engine should hold, independently
// of the engine's own conflict logic.
type intervalModel map[string]*modelBooking

type modelBooking struct {
	employeeID string
	date       string
	start, end time.Time
	active     bool
}

// overlapping returns the id of a live interval of employeeID intersecting
// [start, end), skipping excludeID, or "" when the range is free.
func (m intervalModel) overlapping(employeeID string, start, end time.Time, excludeID string) string {
	for id, b := range m {
		if id == excludeID || !b.active || b.employeeID != employeeID {
			continue
		}
		if b.start.Before(end) && b.end.After(start) {
			return id
		}
	}
	return ""
}

func modelInterval(t *testing.T, date string, minute int, svc models.Service) (time.Time, time.Time) {
	t.Helper()
	day, err := models.ParseDate(date, time.UTC)
	require.NoError(t, err)
	start := day.Add(time.Duration(minute) * time.Minute)
	return start, start.Add(svc.Duration())
}

// assertStoreMatchesModel checks the no-overlap invariant on what the store
// holds and that every live booking matches its model interval.
func assertStoreMatchesModel(t *testing.T, f *fixture, employees []models.Employee, model intervalModel) {
	t.Helper()
	ctx := context.Background()
	var active []models.Booking
	for _, e := range employees {
		for _, d := range []string{"2025-03-09", "2025-03-10", "2025-03-11", "2025-03-12"} {
			list, err := f.repo.ListForEmployeeOnDate(ctx, e.ID, d)
			require.NoError(t, err)
			for _, b := range list {
				if b.Active() {
					active = append(active, b)
				}
			}
		}
	}

	live := 0
	for _, b := range model {
		if b.active {
			live++
		}
	}
	require.Len(t, active, live, "store and model disagree on live bookings")

	for i, a := range active {
		want, ok := model[a.ID]
		require.True(t, ok, "unknown booking %s", a.ID)
		require.True(t, want.active, "booking %s should be cancelled", a.ID)
		require.True(t, a.StartAt.Equal(want.start) && a.EndAt.Equal(want.end),
			"booking %s is [%s,%s), model says [%s,%s)", a.ID, a.StartAt, a.EndAt, want.start, want.end)

		for _, b := range active[i+1:] {
			require.False(t, a.EmployeeID == b.EmployeeID && a.Overlaps(b.StartAt, b.EndAt),
				"overlapping active bookings: %s [%s,%s) and %s [%s,%s)",
				a.ID, a.StartAt, a.EndAt, b.ID, b.StartAt, b.EndAt)
		}
	}
}

func TestRandomSequencesNeverOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	employees := []models.Employee{f.alice, f.bob}
	services := []models.Service{f.haircut, f.shave}
	serviceByID := map[string]models.Service{f.haircut.ID: f.haircut, f.shave.ID: f.shave}
	dates := []string{"2025-03-10", "2025-03-11"}

	model := intervalModel{}
	var ids []string
	conflicts := 0

	for i := 0; i < 300; i++ {
		minute := rng.Intn(24*4) * 15
		clock := fmt.Sprintf("%02d:%02d", minute/60, minute%60)

		switch op := rng.Intn(10); {
		case op < 7 || len(ids) == 0:
			emp := employees[rng.Intn(len(employees))]
			svc := services[rng.Intn(len(services))]
			date := dates[rng.Intn(len(dates))]
			start, end := modelInterval(t, date, minute, svc)
			blocker := model.overlapping(emp.ID, start, end, "")

			b, err := f.engine.CreateBooking(ctx, f.input(emp, svc, date, clock))
			if errors.Is(err, ErrConflict) {
				conflicts++
				require.NotEmpty(t, blocker, "step %d: create %s %s rejected but [%s,%s) is free", i, date, clock, start, end)
				continue
			}
			require.NoError(t, err, "step %d", i)
			require.Empty(t, blocker, "step %d: create %s %s accepted over %s", i, date, clock, blocker)

			model[b.ID] = &modelBooking{employeeID: emp.ID, date: date, start: start, end: end, active: true}
			ids = append(ids, b.ID)
			assertStoreMatchesModel(t, f, employees, model)

		case op < 9:
			id := ids[rng.Intn(len(ids))]
			current := model[id]
			stored, err := f.repo.GetBookingByID(ctx, id)
			require.NoError(t, err)
			start, end := modelInterval(t, current.date, minute, serviceByID[stored.ServiceID])

			_, err = f.engine.UpdateBooking(ctx, id, models.BookingPatch{StartTime: &clock})
			if !current.active {
				require.ErrorIs(t, err, ErrInvalidInput, "step %d: cancelled booking cannot move", i)
				continue
			}
			blocker := model.overlapping(current.employeeID, start, end, id)
			if errors.Is(err, ErrConflict) {
				conflicts++
				require.NotEmpty(t, blocker, "step %d: move of %s to %s rejected but the range is free", i, id, clock)
				continue
			}
			require.NoError(t, err, "step %d", i)
			require.Empty(t, blocker, "step %d: move of %s to %s accepted over %s", i, id, clock, blocker)

			current.start, current.end = start, end
			assertStoreMatchesModel(t, f, employees, model)

		default:
			id := ids[rng.Intn(len(ids))]
			_, err := f.engine.CancelBooking(ctx, id)
			require.NoError(t, err, "step %d", i)
			model[id].active = false
			assertStoreMatchesModel(t, f, employees, model)
		}
	}

	assert.NotZero(t, conflicts, "the sequence should exercise rejections")
	assertStoreMatchesModel(t, f, employees, model)
}
