package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	catalogRepo "slotwise/database/repository/catalog"
	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateServiceInput(input models.ServiceInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return booking.NewInvalidInput("name is required")
	}
	if input.Price.IsNegative() {
		return booking.NewInvalidInput("price must not be negative")
	}
	if input.DurationSeconds <= 0 || input.DurationSeconds > booking.MaxDurationSeconds {
		return booking.NewInvalidInput("duration_seconds must be between 1 and %d", booking.MaxDurationSeconds)
	}
	return nil
}

func validateID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return booking.NewInvalidInput("%s id %q is not a valid UUID", kind, id)
	}
	return nil
}

func mapRepoError(kind, id string, err error) error {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return booking.NewNotFound("%s %s not found", kind, id)
	}
	return fmt.Errorf("%s %s: %w", kind, id, err)
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, input models.ServiceInput) (*models.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	svc := &models.Service{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Price:           input.Price.Round(2),
		DurationSeconds: input.DurationSeconds,
		Active:          input.Active == nil || *input.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	utils.GetLogger().Info("service created", zap.String("serviceID", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, id string, input models.ServiceInput) (*models.Service, error) {
	if err := validateID("service", id); err != nil {
		return nil, err
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}
	svc, err := s.Repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("service", id, err)
	}
	svc.Name = strings.TrimSpace(input.Name)
	svc.Price = input.Price.Round(2)
	svc.DurationSeconds = input.DurationSeconds
	if input.Active != nil {
		svc.Active = *input.Active
	}
	svc.UpdatedAt = time.Now().UTC()
	if err := s.Repo.UpdateService(ctx, svc); err != nil {
		return nil, mapRepoError("service", id, err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	if err := validateID("service", id); err != nil {
		return nil, err
	}
	svc, err := s.Repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("service", id, err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Repo.ListServices(ctx)
}

func (s *DefaultCatalogService) CreateEmployee(ctx context.Context, input models.EmployeeInput) (*models.Employee, error) {
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, booking.NewInvalidInput("display_name is required")
	}
	now := time.Now().UTC()
	emp := &models.Employee{
		ID:          uuid.NewString(),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Active:      input.Active == nil || *input.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.FCMToken != nil {
		emp.FCMToken = *input.FCMToken
	}
	if err := s.Repo.CreateEmployee(ctx, emp); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	utils.GetLogger().Info("employee created", zap.String("employeeID", emp.ID))
	return emp, nil
}

func (s *DefaultCatalogService) UpdateEmployee(ctx context.Context, id string, input models.EmployeeInput) (*models.Employee, error) {
	if err := validateID("employee", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, booking.NewInvalidInput("display_name is required")
	}
	emp, err := s.Repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	emp.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.Active != nil {
		emp.Active = *input.Active
	}
	if input.FCMToken != nil {
		emp.FCMToken = *input.FCMToken
	}
	emp.UpdatedAt = time.Now().UTC()
	if err := s.Repo.UpdateEmployee(ctx, emp); err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	return emp, nil
}

func (s *DefaultCatalogService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	if err := validateID("employee", id); err != nil {
		return nil, err
	}
	emp, err := s.Repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	return emp, nil
}

func (s *DefaultCatalogService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.Repo.ListEmployees(ctx)
}
