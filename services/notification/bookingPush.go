package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"
)

// BookingPushObserver tells the booked employee about new, moved and
// cancelled bookings. An employee who loses a booking to a colleague is told
// it was reassigned.
type BookingPushObserver struct {
	Svc      NotificationService
	Location *time.Location
}

// BookingMessage builds the push for a committed booking event.
func BookingMessage(event string, details *models.BookingDetails, loc *time.Location) models.Notification {
	what := "Appointment"
	if details.Service != nil {
		what = details.Service.Name
	}
	when := details.StartAt.In(loc).Format("Mon 2 Jan, 15:04")

	n := models.Notification{
		Type: event,
		Data: map[string]string{
			"bookingId": details.ID,
			"type":      event,
			"date":      details.BookingDate,
		},
	}
	switch event {
	case models.EventBookingCreated:
		n.Title = "New booking"
		n.Body = fmt.Sprintf("%s booked for %s.", what, when)
	case models.EventBookingCancelled:
		n.Title = "Booking cancelled"
		n.Body = fmt.Sprintf("%s on %s was cancelled.", what, when)
	default:
		n.Title = "Booking updated"
		n.Body = fmt.Sprintf("%s is now %s (%s).", what, when, details.Status)
	}
	return n
}

// ReassignedMessage builds the push for the employee a booking was moved away from.
func ReassignedMessage(details *models.BookingDetails, loc *time.Location) models.Notification {
	what := "Appointment"
	if details.Service != nil {
		what = details.Service.Name
	}
	return models.Notification{
		Type:  models.EventBookingReassigned,
		Title: "Booking reassigned",
		Body:  fmt.Sprintf("%s was moved to another team member and is no longer in your calendar.", what),
		Data: map[string]string{
			"bookingId": details.ID,
			"type":      models.EventBookingReassigned,
			"date":      details.BookingDate,
		},
	}
}

func (o *BookingPushObserver) BookingCommitted(ctx context.Context, event string, details *models.BookingDetails) error {
	n := BookingMessage(event, details, o.Location)
	err := o.push(ctx, details.EmployeeID, n)

	if prev := details.PreviousEmployeeID; prev != "" && prev != details.EmployeeID {
		err = errors.Join(err, o.push(ctx, prev, ReassignedMessage(details, o.Location)))
	}
	return err
}

func (o *BookingPushObserver) push(ctx context.Context, employeeID string, n models.Notification) error {
	err := o.Svc.SendEmployeePushNotification(ctx, employeeID, n.Title, n.Body, n.Data)
	if errors.Is(err, ErrNoPushTarget) {
		return nil
	}
	return err
}
