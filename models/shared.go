package models

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	EmployeeID string `json:"employeeId"`
	CustomerID string `json:"customerId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	StartAt    string `json:"startAt"`  // RFC3339, start the reminder was scheduled for
	FireDate   string `json:"fireDate"` // RFC3339
}

// Booking event types.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"

	// EventBookingReassigned only addresses the employee a booking was moved away from.
	EventBookingReassigned = "booking.reassigned"
)

// BookingEvent is published after a booking write commits.
type BookingEvent struct {
	Type       string        `json:"type"`
	BookingID  string        `json:"bookingId"`
	EmployeeID string        `json:"employeeId"`
	ServiceID  string        `json:"serviceId"`
	CustomerID string        `json:"customerId"`
	Date       string        `json:"date"`
	StartAt    string        `json:"startAt"`
	EndAt      string        `json:"endAt"`
	Status     BookingStatus `json:"status"`
}
