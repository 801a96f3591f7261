package repository

import (
	"context"

	"github.com/yukikurage/printshop-task-api/internal/database"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormOrderRepository is a GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create creates a new order
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.Version == 0 {
		order.Version = 1
	}
	if order.Tasks == nil {
		order.Tasks = datatypes.JSONSlice[models.Task]{}
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List retrieves orders with filtering and pagination
func (r *GormOrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != nil {
		query = query.Where("orders.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.NewPaginationParams(filter.Page, filter.PageSize)
	if err := query.Order("orders.created_at DESC").Scopes(database.Paginate(params)).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateTasks replaces the task forest using the version column as a guard
func (r *GormOrderRepository) UpdateTasks(ctx context.Context, id string, expectedVersion int64, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"tasks":   datatypes.JSONSlice[models.Task](tasks),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

// UpdateStatus updates an order's status
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports zero affected rows when nothing changed
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// missingOrConflict tells apart a vanished order from a stale version after a
// conditional update touched no rows.
func (r *GormOrderRepository) missingOrConflict(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrVersionConflict
}
