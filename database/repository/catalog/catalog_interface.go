package catalogRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

// ErrNotFound is returned when a service or employee id does not exist.
var ErrNotFound = errors.New("catalog record not found")

// CatalogRepository defines data access for services and employees.
type CatalogRepository interface {
	// GetServiceByID retrieves a service by its unique ID, active or not.
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	// ListServices retrieves all services ordered by name.
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, service *models.Service) error
	UpdateService(ctx context.Context, service *models.Service) error

	// GetEmployeeByID retrieves an employee by its unique ID, active or not.
	GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error)
	// ListEmployees retrieves all employees ordered by display name.
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	UpdateEmployee(ctx context.Context, employee *models.Employee) error

	EnsureIndexes(ctx context.Context) error
}
