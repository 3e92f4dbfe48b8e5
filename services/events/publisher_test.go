package events

import (
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingEvent(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)
	b := &models.Booking{
		ID:          "b1",
		EmployeeID:  "e1",
		ServiceID:   "s1",
		CustomerID:  "c1",
		BookingDate: "2025-03-10",
		StartAt:     start,
		EndAt:       start.Add(90 * time.Minute),
		Status:      models.BookingPending,
	}
	ev := NewBookingEvent(models.EventBookingCreated, b)
	assert.Equal(t, "booking.created", ev.Type)
	assert.Equal(t, "b1", ev.BookingID)
	assert.Equal(t, "2025-03-10", ev.Date)
	assert.Equal(t, "2025-03-10T08:00:00Z", ev.StartAt, "instants are published in UTC")
	assert.Equal(t, "2025-03-10T09:30:00Z", ev.EndAt)
}
