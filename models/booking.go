package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a reservation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Re-applying the current status is allowed and treated as a no-op.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

// Booking represents a reservation of one employee for one service.
type Booking struct {
	ID              string          `bson:"id" json:"id" gorm:"primaryKey;type:uuid"`
	EmployeeID      string          `bson:"employee_id" json:"employee_id" gorm:"type:uuid;not null;index:idx_bookings_employee_date,priority:1"`
	ServiceID       string          `bson:"service_id" json:"service_id" gorm:"type:uuid;not null;index"`
	CustomerID      string          `bson:"customer_id" json:"customer_id" gorm:"type:uuid;not null;index"`
	BookingDate     string          `bson:"booking_date" json:"booking_date" gorm:"type:varchar(10);not null;index:idx_bookings_employee_date,priority:2"` // "YYYY-MM-DD", derived from StartAt
	StartAt         time.Time       `bson:"start_at" json:"start_at" gorm:"type:timestamptz;not null"`
	EndAt           time.Time       `bson:"end_at" json:"end_at" gorm:"type:timestamptz;not null"` // StartAt + DurationSeconds, exclusive
	Status          BookingStatus   `bson:"status" json:"status" gorm:"type:varchar(16);not null;index"`
	DurationSeconds int             `bson:"duration_seconds" json:"duration_seconds" gorm:"not null"`
	TotalPrice      decimal.Decimal `bson:"total_price" json:"total_price" gorm:"type:numeric(12,2);not null"` // frozen at creation
	Notes           *string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the booking still claims its interval.
func (b Booking) Active() bool {
	return b.Status != BookingCancelled
}

// Overlaps reports whether the booking's [StartAt, EndAt) intersects [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// Covers reports whether t falls inside [StartAt, EndAt).
func (b Booking) Covers(t time.Time) bool {
	return !t.Before(b.StartAt) && t.Before(b.EndAt)
}

// BookingDetails is a booking together with the rows it references, for display.
type BookingDetails struct {
	Booking
	Service  *Service  `json:"service,omitempty"`
	Employee *Employee `json:"employee,omitempty"`

	// PreviousEmployeeID is set on an update that moved the booking to another employee.
	PreviousEmployeeID string `json:"previousEmployeeId,omitempty"`
}
