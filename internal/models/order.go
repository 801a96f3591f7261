package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProduction, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Order owns its production task forest. Version is bumped on every task tree
// write and guards against lost updates.
type Order struct {
	ID           string                   `gorm:"type:varchar(36);primarykey" json:"id"`
	CustomerName string                   `gorm:"type:varchar(255);not null" json:"customer_name"`
	Items        datatypes.JSONSlice[OrderItem] `gorm:"not null" json:"items"`
	DeliveryDate string                   `gorm:"type:varchar(32);index:idx_orders_delivery_date" json:"delivery_date"`
	Notes        string                   `gorm:"type:text" json:"notes"`
	Status       OrderStatus              `gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_status" json:"status"`
	Tasks        datatypes.JSONSlice[Task] `gorm:"not null" json:"tasks"`
	Version      int64                    `gorm:"not null;default:1" json:"version"`
	CreatedAt    time.Time                `gorm:"index:idx_orders_created_at" json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
	DeletedAt    gorm.DeletedAt           `gorm:"index" json:"-"`
}
