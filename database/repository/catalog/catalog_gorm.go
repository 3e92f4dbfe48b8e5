package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"slotwise/models"

	"gorm.io/gorm"
)

// GormCatalogRepo implements CatalogRepository on PostgreSQL.
type GormCatalogRepo struct {
	db *gorm.DB
}

func NewGormCatalogRepo(db *gorm.DB) *GormCatalogRepo {
	return &GormCatalogRepo{db: db}
}

func (r *GormCatalogRepo) EnsureIndexes(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Service{}, &models.Employee{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

func gormFirst[T any](db *gorm.DB, id string) (*T, error) {
	var out T
	err := db.Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog record %s: %w", id, err)
	}
	return &out, nil
}

func gormUpdate[T any](db *gorm.DB, id string, row *T) error {
	var model T
	res := db.Model(&model).Where("id = ?", id).Select("*").Updates(row)
	if res.Error != nil {
		return fmt.Errorf("failed to update catalog record %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	return gormFirst[models.Service](r.db.WithContext(ctx), id)
}

func (r *GormCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *GormCatalogRepo) CreateService(ctx context.Context, service *models.Service) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *GormCatalogRepo) UpdateService(ctx context.Context, service *models.Service) error {
	return gormUpdate(r.db.WithContext(ctx), service.ID, service)
}

func (r *GormCatalogRepo) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	return gormFirst[models.Employee](r.db.WithContext(ctx), id)
}

func (r *GormCatalogRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Order("display_name ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *GormCatalogRepo) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *GormCatalogRepo) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	return gormUpdate(r.db.WithContext(ctx), employee.ID, employee)
}
