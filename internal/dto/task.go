package dto

import (
	"time"

	"github.com/yukikurage/printshop-task-api/internal/derivation"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/utils"
)

// TaskDTO represents a task node in API responses
type TaskDTO struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	Deadline      string              `json:"deadline"`
	EstimatedTime int                 `json:"estimated_time"`
	OrderID       string              `json:"order_id,omitempty"`
	IngredientID  string              `json:"ingredient_id,omitempty"`
	ParentTaskID  string              `json:"parent_task_id,omitempty"`
	Subtasks      []TaskDTO           `json:"subtasks"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TaskInput is the request body for attaching or replacing a task
type TaskInput struct {
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	Deadline      string              `json:"deadline"`
	EstimatedTime int                 `json:"estimated_time" binding:"gte=0"`
	IngredientID  string              `json:"ingredient_id"`
	Subtasks      []TaskInput         `json:"subtasks" binding:"dive"`
}

// OrderItemDTO represents an order line in requests and responses
type OrderItemDTO struct {
	ProductID   string `json:"product_id" binding:"required"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// OrderDTO represents an order in API responses
type OrderDTO struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemDTO     `json:"items"`
	DeliveryDate string             `json:"delivery_date"`
	Notes        string             `json:"notes"`
	Status       models.OrderStatus `json:"status"`
	Version      int64              `json:"version"`
	Tasks        []TaskDTO          `json:"tasks"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// OrderListItemDTO represents an order in list responses (minimal data)
type OrderListItemDTO struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name"`
	DeliveryDate string             `json:"delivery_date"`
	Status       models.OrderStatus `json:"status"`
	ItemCount    int                `json:"item_count"`
	TaskCount    int                `json:"task_count"`
	CreatedAt    time.Time          `json:"created_at"`
}

// DerivationDTO is a derived task forest with the skips made along the way
type DerivationDTO struct {
	Tasks       []TaskDTO               `json:"tasks"`
	Diagnostics []derivation.Diagnostic `json:"diagnostics"`
}

// Conversion functions

// ToTaskDTO converts a Task model and its subtree to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Priority:      task.Priority,
		Deadline:      task.Deadline,
		EstimatedTime: task.EstimatedTime,
		OrderID:       task.OrderID,
		IngredientID:  task.IngredientID,
		ParentTaskID:  task.ParentTaskID,
		Subtasks:      ToTaskDTOs(task.Subtasks),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskDTOs converts a task forest, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ToTaskModel converts a request body to an unsaved Task
func ToTaskModel(input TaskInput) models.Task {
	subtasks := make([]models.Task, len(input.Subtasks))
	for i, sub := range input.Subtasks {
		subtasks[i] = ToTaskModel(sub)
	}
	return models.Task{
		Title:         input.Title,
		Description:   input.Description,
		Status:        input.Status,
		Priority:      input.Priority,
		Deadline:      input.Deadline,
		EstimatedTime: input.EstimatedTime,
		IngredientID:  input.IngredientID,
		Subtasks:      subtasks,
	}
}

// ToOrderItems converts request items to models
func ToOrderItems(items []OrderItemDTO) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, item := range items {
		out[i] = models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
	}
	return out
}

// ToOrderDTO converts an Order model to OrderDTO
func ToOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
	}

	return OrderDTO{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Items:        items,
		DeliveryDate: order.DeliveryDate,
		Notes:        order.Notes,
		Status:       order.Status,
		Version:      order.Version,
		Tasks:        ToTaskDTOs(order.Tasks),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// ToOrderListItemDTO converts an Order model to OrderListItemDTO
func ToOrderListItemDTO(order models.Order) OrderListItemDTO {
	return OrderListItemDTO{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		DeliveryDate: order.DeliveryDate,
		Status:       order.Status,
		ItemCount:    len(order.Items),
		TaskCount:    models.CountTasks(order.Tasks),
		CreatedAt:    order.CreatedAt,
	}
}

// ToOrderListItems converts a page of orders
func ToOrderListItems(orders []models.Order) []OrderListItemDTO {
	items := make([]OrderListItemDTO, len(orders))
	for i, order := range orders {
		items[i] = ToOrderListItemDTO(order)
	}
	return items
}

// ToDerivationDTO converts a derivation result
func ToDerivationDTO(result derivation.Result) DerivationDTO {
	diags := result.Diagnostics
	if diags == nil {
		diags = []derivation.Diagnostic{}
	}
	return DerivationDTO{
		Tasks:       ToTaskDTOs(result.Tasks),
		Diagnostics: diags,
	}
}

// PaginatedResponse wraps a page of results
type PaginatedResponse[T any] struct {
	Data       []T                      `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
