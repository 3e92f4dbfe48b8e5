package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to callers of the scheduling engine.
const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUnauthorized = "unauthorized"
)

// BookingError is the typed failure of a scheduling operation.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any BookingError carrying the same code, so callers can test
// errors.Is(err, ErrConflict) regardless of the message.
func (e *BookingError) Is(target error) bool {
	var t *BookingError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidInput = &BookingError{Code: CodeInvalidInput}
	ErrNotFound     = &BookingError{Code: CodeNotFound}
	ErrConflict     = &BookingError{Code: CodeConflict}
	ErrUnauthorized = &BookingError{Code: CodeUnauthorized}
)

func NewInvalidInput(format string, args ...interface{}) error {
	return &BookingError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) error {
	return &BookingError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(msg string) error {
	return &BookingError{Code: CodeConflict, Message: msg}
}

// Message of the Conflict returned for an overlapping reservation. It never
// identifies the booking that holds the slot.
const slotTakenMessage = "this time slot is already booked"
