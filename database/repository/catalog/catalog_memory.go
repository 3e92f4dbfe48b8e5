package catalogRepo

import (
	"context"
	"sort"
	"sync"

	"slotwise/models"
)

// MemoryCatalogRepo is an in-process CatalogRepository.
type MemoryCatalogRepo struct {
	mu        sync.RWMutex
	services  map[string]models.Service
	employees map[string]models.Employee
}

func NewMemoryCatalogRepo() *MemoryCatalogRepo {
	return &MemoryCatalogRepo{
		services:  make(map[string]models.Service),
		employees: make(map[string]models.Employee),
	}
}

func (r *MemoryCatalogRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *MemoryCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemoryCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryCatalogRepo) CreateService(ctx context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[service.ID] = *service
	return nil
}

func (r *MemoryCatalogRepo) UpdateService(ctx context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[service.ID]; !ok {
		return ErrNotFound
	}
	r.services[service.ID] = *service
	return nil
}

func (r *MemoryCatalogRepo) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryCatalogRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *MemoryCatalogRepo) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[employee.ID] = *employee
	return nil
}

func (r *MemoryCatalogRepo) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[employee.ID]; !ok {
		return ErrNotFound
	}
	r.employees[employee.ID] = *employee
	return nil
}
