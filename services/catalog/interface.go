package catalog

import (
	"context"

	catalogRepo "slotwise/database/repository/catalog"
	"slotwise/models"
)

// CatalogService manages the services and employees bookings refer to.
// Edits never touch existing bookings: their price and interval are frozen.
type CatalogService interface {
	CreateService(ctx context.Context, input models.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id string, input models.ServiceInput) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)

	CreateEmployee(ctx context.Context, input models.EmployeeInput) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, input models.EmployeeInput) (*models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
}

func NewDefaultCatalogService(repo catalogRepo.CatalogRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo}
}
