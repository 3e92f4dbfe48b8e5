package booking

import (
	"context"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booked(id, employee string, start time.Time, minutes int, status models.BookingStatus) models.Booking {
	return models.Booking{
		ID:          id,
		EmployeeID:  employee,
		BookingDate: start.Format(models.DateLayout),
		StartAt:     start,
		EndAt:       start.Add(time.Duration(minutes) * time.Minute),
		Status:      status,
	}
}

func TestIsOccupiedMultiSlotBooking(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		booked("b1", "alice", day.Add(10*time.Hour), 90, models.BookingConfirmed),
	}
	tests := []struct {
		at   string
		want bool
	}{
		{"09:30", false},
		{"10:00", true},
		{"10:30", true},
		{"11:00", true},
		{"11:30", false}, // end is exclusive
		{"12:00", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOccupied("alice", day, models.MustParseClock(tt.at), bookings), "IsOccupied at %s", tt.at)
	}
}

func TestIsOccupiedIgnoresCancelledAndOtherEmployees(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		booked("b1", "alice", day.Add(10*time.Hour), 60, models.BookingCancelled),
		booked("b2", "bob", day.Add(10*time.Hour), 60, models.BookingPending),
	}
	assert.False(t, IsOccupied("alice", day, models.MustParseClock("10:00"), bookings), "cancelled booking must not occupy the slot")
	assert.True(t, IsOccupied("bob", day, models.MustParseClock("10:30"), bookings), "bob's booking occupies 10:30")
}

func TestIsOccupiedUsesDateLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	// 07:00 UTC is 10:00 local.
	bookings := []models.Booking{
		booked("b1", "alice", time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), 30, models.BookingPending),
	}
	assert.True(t, IsOccupied("alice", day, models.MustParseClock("10:00"), bookings), "10:00 local is occupied")
	assert.False(t, IsOccupied("alice", day, models.MustParseClock("07:00"), bookings), "07:00 local is free")
}

func TestBuildDayAvailabilityLabelsFirstBucketOnly(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	grid := GenerateSlots(models.MustParseClock("09:00"), models.MustParseClock("12:00"), 30)
	bookings := []models.Booking{
		booked("b1", "alice", day.Add(10*time.Hour), 90, models.BookingPending),
	}
	got := BuildDayAvailability("alice", day, grid, 30, bookings)
	assert.Equal(t, "2025-03-10", got.Date)
	require.Len(t, got.Slots, 7)
	for _, s := range got.Slots {
		switch s.Time.String() {
		case "10:00":
			assert.True(t, s.Occupied)
			assert.Equal(t, "b1", s.BookingID, "first covered bucket carries the booking")
		case "10:30", "11:00":
			assert.True(t, s.Occupied, s.Time.String())
			assert.Empty(t, s.BookingID, s.Time.String())
		default:
			assert.False(t, s.Occupied, s.Time.String())
		}
	}
}

func TestDayAvailabilityIncludesPreviousDayOverrun(t *testing.T) {
	f := newFixture(t)
	f.engine.Grid.Open = models.MustParseClock("00:00")
	f.mustCreate(t, f.alice, f.haircut, "2025-03-09", "23:30")

	day, err := f.engine.DayAvailability(context.Background(), f.alice.ID, "2025-03-10")
	require.NoError(t, err)
	assert.True(t, day.Slots[0].Occupied, "00:00 occupied by the overrun")
	assert.True(t, day.Slots[1].Occupied, "00:30 occupied by the overrun")
	assert.False(t, day.Slots[2].Occupied, "01:00 free")
}

func TestDayAvailabilityErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.engine.DayAvailability(ctx, f.alice.ID, "10/03/2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.engine.DayAvailability(ctx, "00000000-0000-0000-0000-000000000000", "2025-03-10")
	assert.ErrorIs(t, err, ErrNotFound)
}
