package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecipeIngredient is one line of a product recipe.
type RecipeIngredient struct {
	IngredientID   string         `json:"ingredient_id"`
	IngredientName string         `json:"ingredient_name,omitempty"`
	Quantity       float64        `json:"quantity"`
	Unit           string         `json:"unit"`
	Price          float64        `json:"price"`
	TaskTemplates  []TaskTemplate `json:"task_templates,omitempty"`
}

type Product struct {
	ID        string                              `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string                              `gorm:"type:varchar(255);not null;index:idx_products_name" json:"name"`
	Recipe    datatypes.JSONSlice[RecipeIngredient] `gorm:"not null" json:"recipe"`
	CreatedAt time.Time                           `json:"created_at"`
	UpdatedAt time.Time                           `json:"updated_at"`
	DeletedAt gorm.DeletedAt                      `gorm:"index" json:"-"`
}
