package notification

import (
	"context"
	"testing"
	"time"

	catalogRepo "slotwise/database/repository/catalog"
	"slotwise/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func newObserver(t *testing.T) (*BookingPushObserver, *DefaultNotificationService, *fakeSender) {
	t.Helper()
	ctx := context.Background()
	repo := catalogRepo.NewMemoryCatalogRepo()
	require.NoError(t, repo.CreateEmployee(ctx, &models.Employee{ID: "e1", DisplayName: "Alice", Active: true, FCMToken: "tok-alice"}))
	require.NoError(t, repo.CreateEmployee(ctx, &models.Employee{ID: "e2", DisplayName: "Bob", Active: true}))
	require.NoError(t, repo.CreateEmployee(ctx, &models.Employee{ID: "e3", DisplayName: "Carol", Active: true, FCMToken: "tok-carol"}))

	sender := &fakeSender{}
	svc, err := NewDefaultNotificationService(repo, sender)
	require.NoError(t, err)
	return &BookingPushObserver{Svc: svc, Location: time.UTC}, svc, sender
}

func haircutDetails(employeeID string) *models.BookingDetails {
	return &models.BookingDetails{
		Booking: models.Booking{ID: "b1", EmployeeID: employeeID, BookingDate: "2025-03-10", StartAt: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), Status: models.BookingPending},
		Service: &models.Service{Name: "Haircut"},
	}
}

func TestBookingPushObserver(t *testing.T) {
	ctx := context.Background()
	obs, svc, sender := newObserver(t)

	require.NoError(t, obs.BookingCommitted(ctx, models.EventBookingCreated, haircutDetails("e1")))
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "tok-alice", msg.Token)
	assert.Equal(t, "Haircut booked for Mon 10 Mar, 10:00.", msg.Notification.Body)
	assert.Equal(t, "employee", msg.Data["role"])

	// No registered device is not an error for the observer.
	assert.NoError(t, obs.BookingCommitted(ctx, models.EventBookingCancelled, haircutDetails("e2")))
	assert.ErrorIs(t, svc.SendEmployeePushNotification(ctx, "e2", "t", "b", nil), ErrNoPushTarget)
}

func TestBookingPushObserverTellsPreviousEmployee(t *testing.T) {
	ctx := context.Background()
	obs, _, sender := newObserver(t)

	details := haircutDetails("e3")
	details.PreviousEmployeeID = "e1"
	require.NoError(t, obs.BookingCommitted(ctx, models.EventBookingUpdated, details))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "tok-carol", sender.sent[0].Token)
	assert.Equal(t, "Booking updated", sender.sent[0].Notification.Title)
	assert.Equal(t, "tok-alice", sender.sent[1].Token)
	assert.Equal(t, "Booking reassigned", sender.sent[1].Notification.Title)
	assert.Equal(t, models.EventBookingReassigned, sender.sent[1].Data["type"])
}

func TestBookingPushObserverSkipsUnchangedEmployee(t *testing.T) {
	obs, _, sender := newObserver(t)

	details := haircutDetails("e1")
	details.PreviousEmployeeID = "e1"
	require.NoError(t, obs.BookingCommitted(context.Background(), models.EventBookingUpdated, details))
	assert.Len(t, sender.sent, 1)
}
