package models

// CreateBookingInput is the shape every booking entry point funnels into.
type CreateBookingInput struct {
	EmployeeID string  `json:"employeeId" binding:"required"`
	ServiceID  string  `json:"serviceId" binding:"required"`
	CustomerID string  `json:"customerId"` // ignored on the public endpoint
	Date       string  `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime" binding:"required"` // HH:MM
	Notes      *string `json:"notes,omitempty"`
}

// BookingPatch holds the optional fields of an update. Nil means unchanged.
type BookingPatch struct {
	EmployeeID *string        `json:"employeeId,omitempty"`
	ServiceID  *string        `json:"serviceId,omitempty"`
	Date       *string        `json:"date,omitempty"`
	StartTime  *string        `json:"startTime,omitempty"`
	Status     *BookingStatus `json:"status,omitempty"`
	Notes      *string        `json:"notes,omitempty"`
}

// TouchesSchedule reports whether the patch changes who, what or when.
func (p BookingPatch) TouchesSchedule() bool {
	return p.EmployeeID != nil || p.ServiceID != nil || p.Date != nil || p.StartTime != nil
}
