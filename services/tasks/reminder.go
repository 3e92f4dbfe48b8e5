package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload.BookingID, payload.EmployeeID, payload.StartAt)),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// reminderTaskID is unique per booking, employee and start, so re-enqueueing
// the same reminder is rejected while a move in time or to another employee
// gets a fresh task.
func reminderTaskID(bookingID, employeeID, startAt string) string {
	return fmt.Sprintf("reminder:%s:%s:%s", bookingID, employeeID, startAt)
}

// BuildReminder returns the reminder for a booking and when it should fire.
// ok is false when the fire time has already passed.
func BuildReminder(details *models.BookingDetails, lead time.Duration, loc *time.Location, now time.Time) (payload models.ReminderPayload, fireAt time.Time, ok bool) {
	fireAt = details.StartAt.Add(-lead)
	if !fireAt.After(now) {
		return payload, fireAt, false
	}
	what := "Appointment"
	if details.Service != nil {
		what = details.Service.Name
	}
	payload = models.ReminderPayload{
		BookingID:  details.ID,
		EmployeeID: details.EmployeeID,
		CustomerID: details.CustomerID,
		Title:      "Upcoming appointment",
		Body:       fmt.Sprintf("%s at %s", what, details.StartAt.In(loc).Format("Mon 2 Jan, 15:04")),
		StartAt:    details.StartAt.UTC().Format(time.RFC3339),
		FireDate:   fireAt.UTC().Format(time.RFC3339),
	}
	return payload, fireAt, true
}

// ReminderScheduler enqueues an appointment reminder for every booking that
// is created or moved. Cancelled bookings are filtered by the worker.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
	loc    *time.Location
	now    func() time.Time
}

func NewReminderScheduler(client *asynq.Client, lead time.Duration, loc *time.Location) *ReminderScheduler {
	return &ReminderScheduler{client: client, lead: lead, loc: loc, now: time.Now}
}

func (s *ReminderScheduler) BookingCommitted(ctx context.Context, event string, details *models.BookingDetails) error {
	if event == models.EventBookingCancelled || !details.Active() {
		return nil
	}
	payload, fireAt, ok := BuildReminder(details, s.lead, s.loc, s.now())
	if !ok {
		return nil
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
