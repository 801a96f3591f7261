package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/printshop-task-api/internal/derivation"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrCustomerNameRequired   = errors.New("customer name is required")
	ErrOrderItemsRequired     = errors.New("an order needs at least one item")
	ErrOrderItemProductMissed = errors.New("every order item needs a product_id")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrInvalidStatusChange    = errors.New("order status cannot change from its current value")
)

// allowedTransitions lists the statuses each order status may move to
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:      {models.OrderStatusInProduction, models.OrderStatusCancelled},
	models.OrderStatusInProduction: {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

// OrderService handles order intake and initial task derivation
type OrderService struct {
	orderRepo      repository.OrderRepository
	productService *ProductService
	engine         *derivation.Engine
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository, productService *ProductService, engine *derivation.Engine) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productService: productService,
		engine:         engine,
	}
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	CustomerName string
	Items        []models.OrderItem
	DeliveryDate string
	Notes        string
}

// CreateOrderResult is a stored order plus what derivation skipped on the way
type CreateOrderResult struct {
	Order       *models.Order
	Diagnostics []derivation.Diagnostic
}

// ListOrdersInput represents filters for listing orders
type ListOrdersInput struct {
	Status   *models.OrderStatus
	Page     int
	PageSize int
}

// CreateOrder stores an order together with its freshly derived task forest
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, ErrCustomerNameRequired
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(input.CustomerName),
		Items:        input.Items,
		DeliveryDate: input.DeliveryDate,
		Notes:        input.Notes,
		Status:       models.OrderStatusPending,
	}

	result, err := s.derive(ctx, *order)
	if err != nil {
		return nil, err
	}
	order.Tasks = result.Tasks

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &CreateOrderResult{
		Order:       order,
		Diagnostics: result.Diagnostics,
	}, nil
}

// GetOrder returns an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// ListOrders returns a page of orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, input ListOrdersInput) ([]models.Order, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidOrderStatus
	}

	orders, total, err := s.orderRepo.List(ctx, repository.OrderFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateOrderStatus moves an order along pending -> in_production -> completed.
// Pending and in-production orders may also be cancelled.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != status && !canTransition(order.Status, status) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	return order, nil
}

// DeleteOrder soft deletes an order together with its task forest
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// PreviewOrderTasks derives a fresh task forest for a stored order without persisting it.
// Re-derivation is never applied automatically; callers decide what to keep.
func (s *OrderService) PreviewOrderTasks(ctx context.Context, id string) (*derivation.Result, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.derive(ctx, *order)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *OrderService) derive(ctx context.Context, order models.Order) (derivation.Result, error) {
	catalog, err := s.productService.Catalog(ctx, order.Items)
	if err != nil {
		return derivation.Result{}, err
	}

	result := s.engine.DeriveOrderTasks(order, catalog)
	for _, d := range result.Diagnostics {
		log.Printf("order %s: %s", order.ID, d.Message)
	}
	return result, nil
}

func validateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return ErrOrderItemsRequired
	}
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return ErrOrderItemProductMissed
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

func canTransition(from, to models.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
