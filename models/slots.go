package models

// SlotAvailability is one grid bucket of an employee's day.
type SlotAvailability struct {
	Time          ClockTime `json:"time"`
	Occupied      bool      `json:"occupied"`
	BookingID     string    `json:"bookingId,omitempty"`     // set only on the bucket where a booking starts
	OverlapsCount int       `json:"overlapsCount,omitempty"` // bookings covering this bucket
}

// DayAvailability is the advisory availability view of one employee on one date.
type DayAvailability struct {
	EmployeeID string             `json:"employeeId"`
	Date       string             `json:"date"`
	StepMinute int                `json:"stepMinutes"`
	Slots      []SlotAvailability `json:"slots"`
}

// SlotGrid describes the business-open interval and the bucket width.
type SlotGrid struct {
	Open        ClockTime `json:"open"`
	Close       ClockTime `json:"close"`
	StepMinutes int       `json:"stepMinutes"`
}
