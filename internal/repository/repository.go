package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/printshop-task-api/internal/models"
)

// ErrVersionConflict is returned when a conditional write finds the stored
// version moved on since the caller read it.
var ErrVersionConflict = errors.New("order repository: version conflict")

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create inserts a new order together with its task forest
	Create(ctx context.Context, order *models.Order) error

	// FindByID finds an order by ID
	FindByID(ctx context.Context, id string) (*models.Order, error)

	// List retrieves orders with filtering and pagination
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)

	// UpdateTasks overwrites the task forest if the stored version still equals
	// expectedVersion, and bumps the version
	UpdateTasks(ctx context.Context, id string, expectedVersion int64, tasks []models.Task) error

	// UpdateStatus updates an order's status
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error

	// Delete soft deletes an order
	Delete(ctx context.Context, id string) error
}

// OrderFilter holds filtering options for listing orders
type OrderFilter struct {
	Status   *models.OrderStatus
	Page     int
	PageSize int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *models.Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id string) (*models.Product, error)

	// FindByIDs returns the products that exist among ids; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)

	// List retrieves products ordered by name
	List(ctx context.Context, page, pageSize int) ([]models.Product, int64, error)

	// Update updates a product
	Update(ctx context.Context, product *models.Product) error

	// Delete soft deletes a product
	Delete(ctx context.Context, id string) error
}
