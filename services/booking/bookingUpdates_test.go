package booking

import (
	"context"
	"testing"
	"time"

	"slotwise/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescheduleExcludesItself(t *testing.T) {
	f := newFixture(t)
	b := f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	// The new interval 10:30-12:00 overlaps the booking's own old interval.
	got, err := f.engine.UpdateBooking(context.Background(), b.ID, models.BookingPatch{StartTime: ptr("10:30")})
	require.NoError(t, err)
	want := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	assert.True(t, got.StartAt.Equal(want), "start %s", got.StartAt)
	assert.True(t, got.EndAt.Equal(want.Add(90*time.Minute)), "end %s", got.EndAt)
	assert.Empty(t, f.observer.Last().PreviousEmployeeID, "same employee keeps the booking")
}

func TestRescheduleIntoAnotherBookingFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustCreate(t, f.alice, f.shave, "2025-03-10", "09:00")
	f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	_, err := f.engine.UpdateBooking(ctx, a.ID, models.BookingPatch{StartTime: ptr("11:00")})
	require.ErrorIs(t, err, ErrConflict)

	stored, err := f.engine.GetBooking(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, stored.StartAt.Equal(a.StartAt), "rejected reschedule must leave the booking untouched")
}

func TestRescheduleToAnotherEmployeeAndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	got, err := f.engine.UpdateBooking(ctx, b.ID, models.BookingPatch{EmployeeID: ptr(f.bob.ID), Date: ptr("2025-03-12")})
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, got.EmployeeID)
	assert.Equal(t, "2025-03-12", got.BookingDate)
	assert.Equal(t, 10, got.StartAt.Hour())

	last := f.observer.Last()
	assert.Equal(t, f.bob.ID, last.EmployeeID)
	assert.Equal(t, f.alice.ID, last.PreviousEmployeeID, "observers learn who lost the booking")

	// Alice's old slot is free again.
	f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")
}

func TestServiceChangeRecomputesEndAndPrice(t *testing.T) {
	f := newFixture(t)
	b := f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	got, err := f.engine.UpdateBooking(context.Background(), b.ID, models.BookingPatch{ServiceID: ptr(f.shave.ID)})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, got.EndAt.Sub(got.StartAt))
	assert.Equal(t, 1800, int(got.DurationSeconds))
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("20.00")), "expected the new service's price, got %s", got.TotalPrice)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name  string
		steps []models.BookingStatus
		ok    []bool
	}{
		{"forward", []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted}, []bool{true, true}},
		{"same status is a no-op", []models.BookingStatus{models.BookingPending, models.BookingPending}, []bool{true, true}},
		{"skip confirm", []models.BookingStatus{models.BookingCompleted}, []bool{false}},
		{"backwards", []models.BookingStatus{models.BookingConfirmed, models.BookingPending}, []bool{true, false}},
		{"no resurrection", []models.BookingStatus{models.BookingCancelled, models.BookingPending}, []bool{true, false}},
		{"completed is terminal", []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled}, []bool{true, true, false}},
		{"unknown", []models.BookingStatus{"archived"}, []bool{false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.mustCreate(t, f.alice, f.shave, "2025-03-10", "10:00")
			for i, s := range tt.steps {
				_, err := f.engine.UpdateBooking(context.Background(), b.ID, models.BookingPatch{Status: ptr(s)})
				if tt.ok[i] {
					require.NoError(t, err, "step %d (%s)", i, s)
				} else {
					require.ErrorIs(t, err, ErrInvalidInput, "step %d (%s)", i, s)
				}
			}
		})
	}
}

func TestTerminalBookingCannotBeRescheduled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, f.alice, f.shave, "2025-03-10", "10:00")
	_, err := f.engine.CancelBooking(ctx, b.ID)
	require.NoError(t, err)

	_, err = f.engine.UpdateBooking(ctx, b.ID, models.BookingPatch{StartTime: ptr("12:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancelWithTimeChangeSkipsConflictCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustCreate(t, f.alice, f.shave, "2025-03-10", "09:00")
	f.mustCreate(t, f.alice, f.haircut, "2025-03-10", "10:00")

	got, err := f.engine.UpdateBooking(ctx, a.ID, models.BookingPatch{
		StartTime: ptr("10:00"),
		Status:    ptr(models.BookingCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)

	events := f.observer.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, models.EventBookingCancelled, events[len(events)-1])
}

func TestNotesOnlyEdit(t *testing.T) {
	f := newFixture(t)
	b := f.mustCreate(t, f.alice, f.shave, "2025-03-10", "10:00")

	got, err := f.engine.UpdateBooking(context.Background(), b.ID, models.BookingPatch{Notes: ptr("bring photos")})
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "bring photos", *got.Notes)
	assert.True(t, got.StartAt.Equal(b.StartAt))
}

func TestUpdateMissingBooking(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.UpdateBooking(context.Background(), "6f1c1d4e-3a7b-4b7e-9d55-1e1f7d7c2a10", models.BookingPatch{Notes: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.engine.UpdateBooking(context.Background(), "nope", models.BookingPatch{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
