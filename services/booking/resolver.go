package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "slotwise/database/repository/catalog"
	"slotwise/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDurationSeconds bounds a service to one day. The locking scheme of the
// writer relies on a booking never spanning more than two calendar dates.
const MaxDurationSeconds = 24 * 60 * 60

// ResolvedService is what a booking needs to know about its service.
type ResolvedService struct {
	Service  models.Service
	Duration time.Duration
	Price    decimal.Decimal
}

// ResolveDuration looks up a service's duration and price. It does not check
// the active flag; callers that start new work on a service do.
func (se *DefaultSchedulingEngine) ResolveDuration(ctx context.Context, serviceID string) (*ResolvedService, error) {
	if _, err := uuid.Parse(serviceID); err != nil {
		return nil, NewInvalidInput("serviceId %q is not a valid UUID", serviceID)
	}
	svc, err := se.Catalog.GetServiceByID(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, NewNotFound("service %s not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service %s: %w", serviceID, err)
	}
	if svc.DurationSeconds <= 0 || svc.DurationSeconds > MaxDurationSeconds {
		return nil, NewInvalidInput("service %s has an invalid duration", serviceID)
	}
	return &ResolvedService{
		Service:  *svc,
		Duration: svc.Duration(),
		Price:    svc.Price,
	}, nil
}

// resolveEmployee loads an employee that can take new work.
func (se *DefaultSchedulingEngine) resolveEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	emp, err := se.lookupEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !emp.Active {
		return nil, NewInvalidInput("employee %s is not accepting bookings", employeeID)
	}
	return emp, nil
}
